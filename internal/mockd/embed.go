package mockd

import (
	_ "embed"
)

//go:embed fixtures/sample.yaml
var sampleFixtureYAML []byte

// SampleFixturePath is the artifact path the embedded fixture answers to.
const SampleFixturePath = "/artifacts/sample-app.apk"

// SampleFixture returns the embedded demo fixture. It ships with the binary
// so the demo CLI and the tests work with zero setup.
func SampleFixture() (*Fixture, error) {
	return ParseFixture(sampleFixtureYAML)
}
