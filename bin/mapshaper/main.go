package main

import (
	"github.com/golang/glog"

	"github.com/saidabou/mapshaper/cmd"
)

func main() {
	err := cmd.Run()
	if err != nil {
		glog.Exit(err.Error())
	}
	glog.Flush()
}
