package conformance

// TestSuite is one YAML file: a named group of cases for a single
// language feature.
type TestSuite struct {
	Name  string     `yaml:"name"`
	Tests []TestCase `yaml:"tests"`
}

// TestCase is one script plus its expected outcome.
type TestCase struct {
	Name   string      `yaml:"name"`
	Source string      `yaml:"source"`
	Expect Expectation `yaml:"expect"`
}

// Expectation names exactly one of Value or Error.
type Expectation struct {
	Value interface{} `yaml:"value,omitempty"`
	Error string      `yaml:"error,omitempty"`
}
