package credit

import "github.com/google/uuid"

// CodeGenerator produces the collision-resistant token assigned to each
// credit at creation time.
type CodeGenerator interface {
	NewCode() uuid.UUID
}

type uuidCodeGenerator struct{}

func (uuidCodeGenerator) NewCode() uuid.UUID {
	return uuid.New()
}

func NewUUIDCodeGenerator() CodeGenerator {
	return uuidCodeGenerator{}
}
