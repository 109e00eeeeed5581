package main

import (
	"github.com/uiuclibrary/tyko/internal/cli"
	"github.com/uiuclibrary/tyko/internal/common/logtrace"
)

func main() {
	logtrace.InitLogger()
	cli.Execute()
}
