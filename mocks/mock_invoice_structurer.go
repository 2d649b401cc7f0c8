package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"saralgst/internal/port"
)

// MockInvoiceStructurer is a mock implementation of port.InvoiceStructurer.
type MockInvoiceStructurer struct {
	mock.Mock
}

func (m *MockInvoiceStructurer) StructureDocument(ctx context.Context, input port.StructureDocumentInput) (*port.StructureOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*port.StructureOutput), args.Error(1)
}

func (m *MockInvoiceStructurer) StructureText(ctx context.Context, input port.StructureTextInput) (*port.StructureOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*port.StructureOutput), args.Error(1)
}
