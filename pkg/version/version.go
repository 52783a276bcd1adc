package version

var (
	// Git SHA Value will be set during build
	GitTagSha = "Git tag sha: Not provided, use -ldflags \"-X github.com/selectdb/observer/pkg/version.GitTagSha=...\""
)

func GetVersion() string {
	return GitTagSha
}
