// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package customer defines the customer naming scheme shared by all
// mercuryctl commands.
package customer

import (
	"fmt"
	"regexp"
	"strings"
)

// namePattern is the only accepted customer name shape: "customer" followed
// by one or more digits (customer2, customer13, ...).
var namePattern = regexp.MustCompile(`^customer[0-9]+$`)

// Name is a validated customer name.
type Name string

// Parse validates s and returns it as a Name.
func Parse(s string) (Name, error) {
	if !namePattern.MatchString(s) {
		return "", fmt.Errorf("invalid customer name %q: expected customerN (e.g. customer2)", s)
	}
	return Name(s), nil
}

func (n Name) String() string { return string(n) }

// Title returns the name with a leading capital, the casing used in the
// Terraform section comment header (Customer2).
func (n Name) Title() string {
	s := string(n)
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// Upper returns the fully uppercased name (CUSTOMER2).
func (n Name) Upper() string {
	return strings.ToUpper(string(n))
}

// Data is the payload handed to manifest templates when provisioning.
type Data struct {
	CustomerName        string
	AKSIdentityClientID string
	AzureTenantID       string
}

// NewData builds the template payload for a customer.
func NewData(n Name, clientID, tenantID string) Data {
	return Data{
		CustomerName:        n.String(),
		AKSIdentityClientID: clientID,
		AzureTenantID:       tenantID,
	}
}
