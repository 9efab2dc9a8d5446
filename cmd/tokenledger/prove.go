package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/holiman/uint256"

	"github.com/pflow-xyz/go-tokenledger/proof"
)

func prove(args []string) error {
	fs := flag.NewFlagSet("prove", flag.ExitOnError)
	balance := fs.Uint64("balance", 100, "Source balance before the transfer")
	toBalance := fs.Uint64("to-balance", 0, "Destination balance before the transfer")
	amount := fs.Uint64("amount", 40, "Transfer amount")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: tokenledger prove [options]

Compile the transfer circuit, generate a Groth16 proof that the transfer
was valid (sufficient balance, conserved value), and verify it.

Options:
`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	p := proof.NewProver()

	start := time.Now()
	if err := p.Register(proof.CircuitTransfer, &proof.TransferCircuit{}); err != nil {
		return err
	}
	cc, _ := p.Circuit(proof.CircuitTransfer)
	fmt.Printf("circuit compiled: %d constraints (%v)\n", cc.Constraints, time.Since(start).Round(time.Millisecond))

	assignment := proof.TransferAssignment(
		uint256.NewInt(*balance),
		uint256.NewInt(*toBalance),
		uint256.NewInt(*amount),
	)

	start = time.Now()
	pf, err := p.Prove(proof.CircuitTransfer, assignment)
	if err != nil {
		return fmt.Errorf("prove: %w", err)
	}
	fmt.Printf("proof generated (%v)\n", time.Since(start).Round(time.Millisecond))

	start = time.Now()
	if err := p.Verify(proof.CircuitTransfer, pf, assignment); err != nil {
		return fmt.Errorf("verify: %w", err)
	}
	fmt.Printf("proof verified (%v)\n", time.Since(start).Round(time.Millisecond))

	fmt.Printf("\ntransfer of %d from balance %d is valid\n", *amount, *balance)
	return nil
}
