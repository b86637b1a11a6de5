package turing_test

import (
	"context"
	"fmt"
	"log"

	"github.com/aretw0/turing"
	"github.com/aretw0/turing/pkg/domain"
)

// ExampleNew builds a machine in code and runs it on a short tape.
func ExampleNew() {
	eng, err := turing.New(domain.Definition{
		Name:     "invert",
		Alphabet: []string{"_", "0", "1"},
		Rules: []domain.RawRule{
			{From: "scan", Read: "0", To: "scan", Write: "1", Move: "right"},
			{From: "scan", Read: "1", To: "scan", Write: "0", Move: "right"},
			{From: "scan", Read: "_", To: "scan", Write: "_", Move: "halt_accept"},
		},
	})
	if err != nil {
		log.Fatal(err)
	}

	res, err := eng.Run(context.Background(), []string{"1", "0", "0"})
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(res.Status, res.Steps)
	fmt.Println(eng.Machine().DecodeSymbols(res.Tape.Symbols))
	// Output:
	// halted_accept 3
	// [0 1 1 _]
}

// ExampleEngine_NewRun steps a run by hand.
func ExampleEngine_NewRun() {
	eng, err := turing.Parse("0 1\nA 0 B 1 right\nA 1 A 1 left\nB 0 A 1 left\nB 1 B 1 halt_accept\n")
	if err != nil {
		log.Fatal(err)
	}

	run, err := eng.NewRun(nil)
	if err != nil {
		log.Fatal(err)
	}
	for !run.Status().Terminal() {
		step := run.Step()
		fmt.Println(step.Reason, run.State().Steps)
	}
	fmt.Println(run.Status())
	// Output:
	// moved 1
	// moved 2
	// moved 3
	// moved 4
	// halted 4
	// halted_accept
}
