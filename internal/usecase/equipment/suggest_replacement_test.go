package equipment

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	domain "github.com/BruksfildServices01/equipment-lending/internal/domain/equipment"
	"github.com/BruksfildServices01/equipment-lending/internal/suggest"
)

type mockSuggester struct {
	mock.Mock
}

func (m *mockSuggester) Suggest(ctx context.Context, req suggest.Request) (*suggest.Suggestion, error) {
	args := m.Called(ctx, req)
	s, _ := args.Get(0).(*suggest.Suggestion)
	return s, args.Error(1)
}

func TestSuggestReplacementBuildsHistory(t *testing.T) {
	e := newEnv(t, morning)
	ctx := context.Background()

	eq := e.registerTripod(t)
	e.borrow(t, eq.ID, domain.LoanShort, nil)

	want := &suggest.Suggestion{SuggestedEquipment: []string{"Monopod"}, Reasoning: "Similar use."}
	m := new(mockSuggester)
	m.On("Suggest", ctx, suggest.Request{
		BrokenEquipmentName: "Tripod",
		UserRole:            "student",
		HistoricalBorrowing: "User Alice borrowed a MT190 (Tripod) on Thu Oct 15 2026.",
	}).Return(want, nil)

	got, err := NewSuggestReplacement(e.repo, m).Execute(ctx, eq.ID, " student ")

	require.NoError(t, err)
	assert.Equal(t, want, got)
	m.AssertExpectations(t)
}

func TestSuggestReplacementSurfacesExternalError(t *testing.T) {
	e := newEnv(t, morning)
	eq := e.registerTripod(t)

	m := new(mockSuggester)
	m.On("Suggest", mock.Anything, mock.Anything).
		Return(nil, &suggest.ExternalServiceError{Err: errors.New("timeout")})

	_, err := NewSuggestReplacement(e.repo, m).Execute(context.Background(), eq.ID, "lecturer")

	var ext *suggest.ExternalServiceError
	assert.ErrorAs(t, err, &ext)
}

func TestSuggestReplacementUnknownItem(t *testing.T) {
	e := newEnv(t, morning)

	_, err := NewSuggestReplacement(e.repo, new(mockSuggester)).Execute(context.Background(), "missing", "lecturer")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
