package constants

const (
	// ToolName is the external package manager uvpkg drives.
	ToolName = "uv"

	// ProgrammingDirKey is the config field holding the packages root.
	ProgrammingDirKey = "programming_dir"
)

// InitArgs returns the arguments passed to the tool to scaffold packageName.
func InitArgs(packageName string) []string {
	return []string{"init", "--package", packageName}
}
