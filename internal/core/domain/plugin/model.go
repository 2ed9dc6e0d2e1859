package plugindomain

// Sentinel build identity baked into the base image. Files created by the
// stock image build are owned by this service account, so a build running
// as the same identity never needs ownership remediation.
const (
	SentinelUID = 9999
	SentinelGID = 9999
)

// BuildIdentity is the (uid, gid) pair the image build process runs as.
// Plugin files must end up owned by this identity or the runtime process
// cannot read its own code later.
type BuildIdentity struct {
	UID int
	GID int
}

// DefaultBuildIdentity returns the sentinel identity.
func DefaultBuildIdentity() BuildIdentity {
	return BuildIdentity{UID: SentinelUID, GID: SentinelGID}
}

// Remediate reports whether ownership of the plugins root has to be
// rewritten before installation proceeds. The sentinel pair means the
// build runs as the image's baked-in account and every file is already
// correctly owned.
func (b BuildIdentity) Remediate() bool {
	return b.UID != SentinelUID || b.GID != SentinelGID
}

// Mode selects the variant of the installation procedure.
type Mode string

const (
	ModeProduction  Mode = "production"
	ModeDevelopment Mode = "development"
)

// Dev reports whether development-only installation behavior is enabled.
func (m Mode) Dev() bool {
	return m == ModeDevelopment
}

// Plugin represents an installed plugin directory with its metadata.
type Plugin struct {
	// Name is the plugin directory's basename
	Name string

	// Path is the absolute path of the plugin directory
	Path string

	// Description comes from the optional descriptor file; empty when the
	// descriptor is absent, malformed, or has no description field
	Description string

	// HasDescriptor records whether a descriptor file was present
	HasDescriptor bool
}
