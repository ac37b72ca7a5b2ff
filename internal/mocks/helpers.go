package mocks

import (
	"testing"

	"go.uber.org/mock/gomock"
)

// NewMockQuerierForTest creates a new mock Querier for testing
func NewMockQuerierForTest(t *testing.T) *MockQuerier {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)
	return NewMockQuerier(ctrl)
}

// NewMockCustodyClientForTest creates a new mock CustodyClientInterface for testing
func NewMockCustodyClientForTest(t *testing.T) *MockCustodyClientInterface {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)
	return NewMockCustodyClientInterface(ctrl)
}
