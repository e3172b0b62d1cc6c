package main

import "github.com/rcpch/national-paediatric-diabetes-audit-sub001/cmd/npda/command"

func main() {
	command.Execute()
}
