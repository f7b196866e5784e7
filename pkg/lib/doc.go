// Package lib provides a Go SDK to run cirun CI pipelines programmatically.
//
// A pipeline has two phases that always run in order: the fix phase (tasks that
// may change the code, like formatters) and the check phase (tasks that validate
// the code, like linters and tests). The tasks of a phase run concurrently and
// the pipeline stops at the first phase with a failed task.
//
// # Quick Start
//
//	client, err := lib.New(lib.Config{Stdout: os.Stdout})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	res, err := client.Run(ctx, lib.Pipeline{
//	    Fix: lib.Phase{Name: "Fix", Tasks: []lib.Task{
//	        {Name: "Format", Command: []string{"gofmt", "-w", "."}},
//	    }},
//	    Check: lib.Phase{Name: "Check", Tasks: []lib.Task{
//	        {Name: "Vet", Command: []string{"go", "vet", "./..."}},
//	        {Name: "Tests", Command: []string{"go", "test", "./..."}},
//	    }},
//	})
//
// Commands are argument vectors, they are never run through a shell. Tasks have
// no timeout and are never cancelled once launched.
package lib
