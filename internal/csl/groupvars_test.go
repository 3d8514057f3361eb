package csl

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJoin_DidRenderOutranksOnlyEmpty(t *testing.T) {
	assert.Equal(t, DidRender, Join(OnlyEmpty, DidRender))
	assert.Equal(t, DidRender, Join(DidRender, OnlyEmpty))
}

func TestJoin_OnlyEmptyOutranksNoneSeen(t *testing.T) {
	assert.Equal(t, OnlyEmpty, Join(NoneSeen, OnlyEmpty))
}

func TestJoin_ImportantOutranksDidRender(t *testing.T) {
	assert.Equal(t, Important, Join(DidRender, Important))
}

func TestJoinAll_FoldsFromNoneSeen(t *testing.T) {
	assert.Equal(t, NoneSeen, JoinAll())
	assert.Equal(t, DidRender, JoinAll(NoneSeen, OnlyEmpty, DidRender))
}

func TestShouldRender(t *testing.T) {
	assert.True(t, NoneSeen.ShouldRender())
	assert.False(t, OnlyEmpty.ShouldRender())
	assert.True(t, DidRender.ShouldRender())
	assert.True(t, Important.ShouldRender())
}
