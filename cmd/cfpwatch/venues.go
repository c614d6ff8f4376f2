package main

import "fmt"

// Run executes the venues command.
func (c *VenuesCmd) Run(deps *Dependencies) error {
	if len(deps.Venues) == 0 {
		fmt.Fprintln(deps.Stdout, "No enabled venues configured.")
		return nil
	}

	for _, v := range deps.Venues {
		element := "(whole page)"
		if v.Element != nil {
			element = v.Element.String()
		}
		fmt.Fprintf(deps.Stdout, "%s  %s  %s\n", v.Name, v.URL, element)
	}
	return nil
}
