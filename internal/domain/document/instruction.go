package document

import (
	"encoding/json"

	"github.com/kailas-cloud/recipedex/internal/domain/recipe"
)

// InstructionDocument is the nested index form of one recipe step.
type InstructionDocument struct {
	InstructionID     *int64 `json:"instructionId,omitempty"`
	InstructionNumber int    `json:"instructionNumber"`
	Instruction       string `json:"instruction"`
}

// FromInstruction copies an instruction verbatim into its document form.
func FromInstruction(ins recipe.Instruction) InstructionDocument {
	return InstructionDocument{
		InstructionID:     ins.ID(),
		InstructionNumber: ins.Number(),
		Instruction:       ins.Instruction(),
	}
}

// FromInstructions converts instructions in source order. The result is never nil.
func FromInstructions(src []recipe.Instruction) []InstructionDocument {
	out := make([]InstructionDocument, len(src))
	for i, ins := range src {
		out[i] = FromInstruction(ins)
	}
	return out
}

// Kind implements Document.
func (InstructionDocument) Kind() Kind { return KindInstruction }

func (InstructionDocument) sealed() {}

// MarshalJSON writes the document with its _class discriminator.
func (d InstructionDocument) MarshalJSON() ([]byte, error) {
	type plain InstructionDocument
	return json.Marshal(struct {
		Class Kind `json:"_class"`
		plain
	}{KindInstruction, plain(d)})
}

// UnmarshalJSON reads the document and rejects a foreign _class.
func (d *InstructionDocument) UnmarshalJSON(data []byte) error {
	type plain InstructionDocument
	var v struct {
		Class Kind `json:"_class"`
		plain
	}
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	if err := checkKind(v.Class, KindInstruction); err != nil {
		return err
	}
	*d = InstructionDocument(v.plain)
	return nil
}
