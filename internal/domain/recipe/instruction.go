package recipe

import (
	"fmt"

	"github.com/kailas-cloud/recipedex/internal/domain"
)

// Instruction is one step of a recipe (immutable value object).
type Instruction struct {
	id          *int64
	number      int
	instruction string
}

// NewInstruction validates and creates an Instruction.
func NewInstruction(id *int64, number int, instruction string) (Instruction, error) {
	if number < 0 {
		return Instruction{}, fmt.Errorf("instruction number must not be negative, got %d: %w", number, domain.ErrInvalidRecipe)
	}
	if instruction == "" {
		return Instruction{}, fmt.Errorf("instruction is required: %w", domain.ErrInvalidRecipe)
	}
	return ReconstructInstruction(id, number, instruction), nil
}

// ReconstructInstruction creates an Instruction without validation (storage hydration).
func ReconstructInstruction(id *int64, number int, instruction string) Instruction {
	return Instruction{id: clonePtr(id), number: number, instruction: instruction}
}

// ID returns the instruction identifier, nil if not yet persisted.
func (i Instruction) ID() *int64 { return clonePtr(i.id) }

// Number returns the step index.
func (i Instruction) Number() int { return i.number }

// Instruction returns the step text.
func (i Instruction) Instruction() string { return i.instruction }
