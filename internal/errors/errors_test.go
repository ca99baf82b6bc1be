package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilderMetadata(t *testing.T) {
	base := NewStd("connection refused")
	err := New(base).
		Component("remote").
		Category(CategoryNetwork).
		Priority(PriorityHigh).
		Context("site", "Elk Creek").
		Build()

	var ee *EnhancedError
	require.True(t, As(err, &ee))
	assert.Equal(t, "remote", ee.GetComponent())
	assert.Equal(t, string(CategoryNetwork), ee.GetCategory())
	assert.Equal(t, PriorityHigh, ee.GetPriority())
	assert.Equal(t, "Elk Creek", ee.GetContext()["site"])
	assert.False(t, ee.GetTimestamp().IsZero())
	assert.Equal(t, "connection refused", err.Error())
}

func TestBuildNilErrorReturnsNil(t *testing.T) {
	assert.NoError(t, New(nil).Component("remote").Build())
}

func TestUnwrapPreservesSentinel(t *testing.T) {
	sentinel := NewStd("no rows for site")
	err := New(fmt.Errorf("download: %w", sentinel)).
		Category(CategoryEmptyResult).
		Build()

	assert.True(t, Is(err, sentinel))
}

func TestIsCategory(t *testing.T) {
	err := New(NewStd("missing bundle")).Category(CategoryNotFound).Build()

	assert.True(t, IsCategory(err, CategoryNotFound))
	assert.False(t, IsCategory(err, CategoryDatabase))
	assert.True(t, IsNotFound(err))

	// Wrapped one level deeper the category still resolves.
	wrapped := fmt.Errorf("show: %w", err)
	assert.True(t, IsNotFound(wrapped))

	assert.False(t, IsCategory(NewStd("plain"), CategoryNotFound))
}

func TestDefaultsWhenUnset(t *testing.T) {
	err := New(NewStd("boom")).Build()

	var ee *EnhancedError
	require.True(t, As(err, &ee))
	assert.Equal(t, ComponentUnknown, ee.GetComponent())
	assert.Equal(t, string(CategoryGeneric), ee.GetCategory())
	assert.Empty(t, ee.GetPriority())
	assert.Nil(t, ee.GetContext())
}

func TestInvalidPriorityFallsBackToMedium(t *testing.T) {
	err := New(NewStd("boom")).Priority("urgent!!").Build()

	var ee *EnhancedError
	require.True(t, As(err, &ee))
	assert.Equal(t, PriorityMedium, ee.GetPriority())
}
