package simplify

import (
	"reflect"
	"sort"
	"testing"
)

func TestFindFirst(t *testing.T) {
	v, err := FindValueByRank([]float64{3, 1, 2}, 1)
	if err != nil || v != 1 {
		t.Fatal("Failed")
	}
}

func TestFindLast(t *testing.T) {
	v, err := FindValueByRank([]float64{3, 1, 2}, 3)
	if err != nil || v != 3 {
		t.Fatal("Failed")
	}
}

func TestFindSingle(t *testing.T) {
	v, err := FindValueByRank([]float64{7}, 1)
	if err != nil || v != 7 {
		t.Fatal("Should return the only value")
	}
}

func TestFindDuplicates(t *testing.T) {
	input := []float64{4, 2, 2, 9, 2, 4}
	expected := []float64{2, 2, 2, 4, 4, 9}
	for rank := 1; rank <= len(expected); rank++ {
		arr := append([]float64(nil), input...)
		v, err := FindValueByRank(arr, rank)
		if err != nil {
			t.Fatal(err)
		}
		if v != expected[rank-1] {
			t.Fatalf("rank %d: got %v, expected %v", rank, v, expected[rank-1])
		}
	}
}

func TestFindMatchesSort(t *testing.T) {
	input := []float64{0.5, 12, 3.25, 8, 1, 99, 42, 7, 6.5, 0.1, 15}
	sorted := append([]float64(nil), input...)
	sort.Float64s(sorted)

	for rank := 1; rank <= len(input); rank++ {
		arr := append([]float64(nil), input...)
		v, err := FindValueByRank(arr, rank)
		if err != nil {
			t.Fatal(err)
		}
		if v != sorted[rank-1] {
			t.Fatalf("rank %d: got %v, expected %v", rank, v, sorted[rank-1])
		}
	}
}

func TestFindReordersInPlace(t *testing.T) {
	arr := []float64{5, 4, 3, 2, 1}
	_, err := FindValueByRank(arr, 3)
	if err != nil {
		t.Fatal(err)
	}
	sorted := append([]float64(nil), arr...)
	sort.Float64s(sorted)
	if !reflect.DeepEqual(sorted, []float64{1, 2, 3, 4, 5}) {
		t.Fatal("Should only permute the input")
	}
}

func TestInvalidRank(t *testing.T) {
	if _, err := FindValueByRank(nil, 1); err == nil {
		t.Fatal("Expected error for empty input")
	}
	if _, err := FindValueByRank([]float64{1, 2}, 0); err == nil {
		t.Fatal("Expected error for rank 0")
	}
	if _, err := FindValueByRank([]float64{1, 2}, 3); err == nil {
		t.Fatal("Expected error for rank past the end")
	}
}

func TestRankForPct(t *testing.T) {
	if RankForPct(0.5, 10) != 6 {
		t.Fatal("Failed")
	}
	if RankForPct(0.99, 10) != 1 {
		t.Fatal("Failed")
	}
	if RankForPct(0.01, 10) != 10 {
		t.Fatal("Failed")
	}
}

func BenchmarkFindValueByRank(b *testing.B) {
	input := make([]float64, 10000)
	for i := range input {
		input[i] = float64((i * 7919) % 10007)
	}
	arr := make([]float64, len(input))
	for n := 0; n < b.N; n++ {
		copy(arr, input)
		FindValueByRank(arr, len(arr)/2)
	}
}
