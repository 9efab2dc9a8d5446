package proof

import (
	"fmt"
	"sync"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/backend/groth16"
	"github.com/consensys/gnark/constraint"
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/frontend/cs/r1cs"
)

// Circuit names registered by RegisterLedgerCircuits.
const (
	CircuitTransfer = "transfer"
	CircuitMint     = "mint"
)

// Prover manages circuit compilation, trusted setup, and proof generation.
type Prover struct {
	mu       sync.RWMutex
	circuits map[string]*CompiledCircuit
	curve    ecc.ID
}

// CompiledCircuit holds a compiled circuit and its keys.
type CompiledCircuit struct {
	Name         string
	CS           constraint.ConstraintSystem
	ProvingKey   groth16.ProvingKey
	VerifyingKey groth16.VerifyingKey
	Constraints  int
}

// NewProver creates a prover over BN254.
func NewProver() *Prover {
	return &Prover{
		circuits: make(map[string]*CompiledCircuit),
		curve:    ecc.BN254,
	}
}

// RegisterLedgerCircuits compiles and registers the ledger transition
// circuits. Setup is the expensive step; do it once per process.
func (p *Prover) RegisterLedgerCircuits() error {
	if err := p.Register(CircuitTransfer, &TransferCircuit{}); err != nil {
		return err
	}
	return p.Register(CircuitMint, &MintCircuit{})
}

// Register compiles a circuit, runs trusted setup, and stores it under name.
func (p *Prover) Register(name string, circuit frontend.Circuit) error {
	cs, err := frontend.Compile(p.curve.ScalarField(), r1cs.NewBuilder, circuit)
	if err != nil {
		return fmt.Errorf("proof: compile %s: %w", name, err)
	}

	// Dev-mode setup; production wants a ceremony.
	pk, vk, err := groth16.Setup(cs)
	if err != nil {
		return fmt.Errorf("proof: setup %s: %w", name, err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.circuits[name] = &CompiledCircuit{
		Name:         name,
		CS:           cs,
		ProvingKey:   pk,
		VerifyingKey: vk,
		Constraints:  cs.GetNbConstraints(),
	}
	return nil
}

// Circuit returns a compiled circuit by name.
func (p *Prover) Circuit(name string) (*CompiledCircuit, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	cc, ok := p.circuits[name]
	return cc, ok
}

// Prove generates a proof for the named circuit and full assignment.
func (p *Prover) Prove(name string, assignment frontend.Circuit) (groth16.Proof, error) {
	cc, ok := p.Circuit(name)
	if !ok {
		return nil, fmt.Errorf("proof: circuit %q not registered", name)
	}

	witness, err := frontend.NewWitness(assignment, p.curve.ScalarField())
	if err != nil {
		return nil, fmt.Errorf("proof: witness: %w", err)
	}

	proof, err := groth16.Prove(cc.CS, cc.ProvingKey, witness)
	if err != nil {
		return nil, fmt.Errorf("proof: prove: %w", err)
	}
	return proof, nil
}

// Verify checks a proof against the public part of an assignment.
func (p *Prover) Verify(name string, proof groth16.Proof, assignment frontend.Circuit) error {
	cc, ok := p.Circuit(name)
	if !ok {
		return fmt.Errorf("proof: circuit %q not registered", name)
	}

	witness, err := frontend.NewWitness(assignment, p.curve.ScalarField())
	if err != nil {
		return fmt.Errorf("proof: witness: %w", err)
	}
	publicWitness, err := witness.Public()
	if err != nil {
		return fmt.Errorf("proof: public witness: %w", err)
	}

	return groth16.Verify(proof, cc.VerifyingKey, publicWitness)
}
