package build

// Defined on build time:

var GitCommit = "-"
var BuildVersion = "dev"
var BuildDate = "-"

// MajorVersion of the project manifest format.
const MajorVersion = 1
