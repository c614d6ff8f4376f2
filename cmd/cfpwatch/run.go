package main

// Run executes the run command: a scan followed by an analysis of every
// stored candidate.
func (c *RunCmd) Run(deps *Dependencies) error {
	if _, err := scan(deps); err != nil {
		return err
	}
	return analyze(deps)
}
