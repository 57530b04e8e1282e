package anglegradient

// VersionNumber is the numeric library version.
const VersionNumber float64 = 1.0

// VersionString is the full library version. Release builds stamp it with
//
//	-ldflags "-X github.com/opd-ai/go-anglegradient/pkg/anglegradient.VersionString=1.0.3"
var VersionString = "1.0.0"
