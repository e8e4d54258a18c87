package main

import (
	"fmt"

	"github.com/fwojciec/sitesnap"
	"github.com/fwojciec/sitesnap/yaml"
)

// Run executes the profiles command.
func (c *ProfilesCmd) Run(deps *Dependencies) error {
	if c.Name == "" {
		for _, name := range yaml.BuiltinProfiles() {
			fmt.Fprintln(deps.Stdout, name)
		}
		return nil
	}

	profile, err := yaml.LoadProfile(c.Name)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", sitesnap.ErrorMessage(err))
		return err
	}
	data, err := yaml.MarshalProfile(profile)
	if err != nil {
		return err
	}
	_, err = deps.Stdout.Write(data)
	return err
}
