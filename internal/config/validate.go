package config

import "fmt"

// Validate checks the parts of a Job that do not depend on the selected
// backend: required inputs and the policy enum. Backend-specific rules
// (credential invariants, server/database requirements) live with each
// backend's connection builder, which is the component that knows them.
func (j Job) Validate() error {
	if j.CSVPath == "" {
		return fmt.Errorf("csv file path is required")
	}
	if j.Table == "" {
		return fmt.Errorf("table name is required")
	}
	if j.Driver == "" {
		return fmt.Errorf("driver is required")
	}
	if _, err := ParsePolicy(string(j.IfExists)); err != nil {
		return err
	}
	return nil
}
