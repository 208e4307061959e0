// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package terraform

import (
	"fmt"
	"os"
	"regexp"
	"sort"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/zclconf/go-cty/cty"

	"github.com/mercuryctl/mercuryctl/internal/customer"
	"github.com/mercuryctl/mercuryctl/internal/log"
)

// DefaultFile is the Terraform file edited when no --tf-file is given.
const DefaultFile = "main.tf"

// outputMarker locates the outputs section. New customer sections are
// spliced in immediately before it so outputs stay last in the file.
var outputMarker = regexp.MustCompile(`(?m)^output "key_vault_name"`)

// passwordLabel extracts the customer name from a random_password resource
// label.
var passwordLabel = regexp.MustCompile(`^(customer[0-9]+)_db_password$`)

// Resources returns the addresses of the Terraform resources managed for a
// customer, in the order they appear in the generated section.
func Resources(n customer.Name) []string {
	return []string{
		"random_password." + n.String() + "_db_password",
		"azurerm_key_vault_secret." + n.String() + "_db_user",
		"azurerm_key_vault_secret." + n.String() + "_db_password",
	}
}

// Add inserts the customer's Key Vault resource section into the Terraform
// file at path, before the output marker when present or at EOF otherwise.
// Returns false without touching the file when the section already exists.
func Add(path string, n customer.Name) (bool, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return false, fmt.Errorf("terraform file not found: %w", err)
	}

	exists, err := hasCustomer(content, path, n)
	if err != nil {
		return false, err
	}
	if exists {
		return false, nil
	}

	section := renderSection(n)

	var updated []byte
	if loc := outputMarker.FindIndex(content); loc != nil {
		updated = append(updated, content[:loc[0]]...)
		updated = append(updated, section...)
		updated = append(updated, '\n')
		updated = append(updated, content[loc[0]:]...)
	} else {
		updated = append(updated, trimTrailingNewlines(content)...)
		updated = append(updated, '\n')
		updated = append(updated, section...)
	}

	if err := verify(path, updated); err != nil {
		return false, err
	}

	if err := os.WriteFile(path, updated, 0o644); err != nil {
		return false, fmt.Errorf("failed to write terraform file: %w", err)
	}
	return true, nil
}

// Remove deletes the customer's section from the Terraform file at path.
// The match spans the section comment header through the closing brace after
// the last depends_on, exactly the shape Add generates. Returns false when
// no section was found.
func Remove(path string, n customer.Name) (bool, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return false, fmt.Errorf("terraform file not found: %w", err)
	}

	// The header casing has varied over time (CUSTOMER2 vs Customer2), so the
	// match is case-insensitive. Resource names are always lowercase.
	pattern := regexp.MustCompile(
		`(?si)## ` + regexp.QuoteMeta(n.String()) + ` DB credentials.*?` +
			`resource "azurerm_key_vault_secret" "` + regexp.QuoteMeta(n.String()) + `_db_password" \{.*?` +
			`depends_on = \[azurerm_role_assignment\.kv_admin\]\s*\}\s*\n`,
	)

	loc := pattern.FindIndex(content)
	if loc == nil {
		return false, nil
	}

	updated := append([]byte{}, content[:loc[0]]...)
	updated = append(updated, content[loc[1]:]...)

	if err := verify(path, updated); err != nil {
		return false, err
	}

	if err := os.WriteFile(path, updated, 0o644); err != nil {
		return false, fmt.Errorf("failed to write terraform file: %w", err)
	}
	return true, nil
}

// ListCustomers returns the customers that have a managed section in the
// Terraform file at path, sorted by name.
func ListCustomers(path string) ([]string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("terraform file not found: %w", err)
	}

	f, diags := hclwrite.ParseConfig(content, path, hcl.InitialPos)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse terraform file: %s", diags.Error())
	}

	var names []string
	for _, block := range f.Body().Blocks() {
		labels := block.Labels()
		if block.Type() != "resource" || len(labels) != 2 || labels[0] != "random_password" {
			continue
		}
		if m := passwordLabel.FindStringSubmatch(labels[1]); m != nil {
			names = append(names, m[1])
		}
	}
	sort.Strings(names)

	return names, nil
}

// hasCustomer reports whether the random_password resource for the customer
// already exists in the file.
func hasCustomer(content []byte, path string, n customer.Name) (bool, error) {
	f, diags := hclwrite.ParseConfig(content, path, hcl.InitialPos)
	if diags.HasErrors() {
		return false, fmt.Errorf("failed to parse terraform file: %s", diags.Error())
	}

	want := n.String() + "_db_password"
	for _, block := range f.Body().Blocks() {
		labels := block.Labels()
		if block.Type() == "resource" && len(labels) == 2 &&
			labels[0] == "random_password" && labels[1] == want {
			return true, nil
		}
	}
	return false, nil
}

// renderSection generates the customer's resource section: a comment header,
// the password generator, and the two Key Vault secrets.
func renderSection(n customer.Name) []byte {
	f := hclwrite.NewEmptyFile()
	body := f.Body()

	body.AppendUnstructuredTokens(hclwrite.Tokens{{
		Type:  hclsyntax.TokenComment,
		Bytes: []byte("## " + n.Upper() + " DB credentials\n"),
	}})
	body.AppendNewline()

	pw := body.AppendNewBlock("resource", []string{"random_password", n.String() + "_db_password"})
	pw.Body().SetAttributeValue("length", cty.NumberIntVal(24))
	pw.Body().SetAttributeValue("special", cty.BoolVal(false))
	pw.Body().AppendNewline()
	lc := pw.Body().AppendNewBlock("lifecycle", nil)
	lc.Body().SetAttributeTraversal("ignore_changes", hcl.Traversal{
		hcl.TraverseRoot{Name: "all"},
	})
	body.AppendNewline()

	user := body.AppendNewBlock("resource", []string{"azurerm_key_vault_secret", n.String() + "_db_user"})
	user.Body().SetAttributeValue("name", cty.StringVal(n.String()+"-db-user"))
	user.Body().SetAttributeValue("value", cty.StringVal("app"))
	user.Body().SetAttributeTraversal("key_vault_id", vaultIDTraversal())
	user.Body().AppendNewline()
	user.Body().SetAttributeRaw("depends_on", roleAssignmentTuple())
	body.AppendNewline()

	pass := body.AppendNewBlock("resource", []string{"azurerm_key_vault_secret", n.String() + "_db_password"})
	pass.Body().SetAttributeValue("name", cty.StringVal(n.String()+"-db-password"))
	pass.Body().SetAttributeTraversal("value", hcl.Traversal{
		hcl.TraverseRoot{Name: "random_password"},
		hcl.TraverseAttr{Name: n.String() + "_db_password"},
		hcl.TraverseAttr{Name: "result"},
	})
	pass.Body().SetAttributeTraversal("key_vault_id", vaultIDTraversal())
	pass.Body().AppendNewline()
	pass.Body().SetAttributeRaw("depends_on", roleAssignmentTuple())

	return f.Bytes()
}

// vaultIDTraversal references the shared vault: azurerm_key_vault.mercury_vault.id.
func vaultIDTraversal() hcl.Traversal {
	return hcl.Traversal{
		hcl.TraverseRoot{Name: "azurerm_key_vault"},
		hcl.TraverseAttr{Name: "mercury_vault"},
		hcl.TraverseAttr{Name: "id"},
	}
}

// roleAssignmentTuple builds the [azurerm_role_assignment.kv_admin] list.
func roleAssignmentTuple() hclwrite.Tokens {
	return hclwrite.TokensForTuple([]hclwrite.Tokens{
		hclwrite.TokensForTraversal(hcl.Traversal{
			hcl.TraverseRoot{Name: "azurerm_role_assignment"},
			hcl.TraverseAttr{Name: "kv_admin"},
		}),
	})
}

// verify refuses an edit that leaves the file unparseable.
func verify(path string, src []byte) error {
	_, diags := hclsyntax.ParseConfig(src, path, hcl.InitialPos)
	if diags.HasErrors() {
		log.Errorf("post-edit parse failed: %s", diags.Error())
		return fmt.Errorf("edit would corrupt %s: %s", path, diags.Error())
	}
	return nil
}

// trimTrailingNewlines strips trailing newlines so appended sections always
// sit one blank line below the existing content.
func trimTrailingNewlines(b []byte) []byte {
	for len(b) > 0 && (b[len(b)-1] == '\n' || b[len(b)-1] == '\r') {
		b = b[:len(b)-1]
	}
	return append(b, '\n')
}
