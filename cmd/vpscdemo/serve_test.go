package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestServeCommandFlags(t *testing.T) {
	c := newCLI()
	cmd := c.serveCommand()

	f := cmd.Flags().Lookup("addr")
	if assert.NotNil(t, f) {
		assert.Equal(t, ":9090", f.DefValue)
	}
}
