// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package customer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "simple", input: "customer2"},
		{name: "multi_digit", input: "customer42"},
		{name: "leading_zero", input: "customer007"},
		{name: "missing_number", input: "customer", wantErr: true},
		{name: "wrong_prefix", input: "client2", wantErr: true},
		{name: "uppercase", input: "Customer2", wantErr: true},
		{name: "trailing_garbage", input: "customer2x", wantErr: true},
		{name: "embedded_space", input: "customer 2", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, err := Parse(tt.input)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Empty(t, n)
				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.input, n.String())
		})
	}
}

func TestNameCasings(t *testing.T) {
	n, err := Parse("customer2")
	assert.NoError(t, err)
	assert.Equal(t, "Customer2", n.Title())
	assert.Equal(t, "CUSTOMER2", n.Upper())
}

func TestNewData(t *testing.T) {
	n, err := Parse("customer3")
	assert.NoError(t, err)

	d := NewData(n, "client-id", "tenant-id")
	assert.Equal(t, "customer3", d.CustomerName)
	assert.Equal(t, "client-id", d.AKSIdentityClientID)
	assert.Equal(t, "tenant-id", d.AzureTenantID)
}
