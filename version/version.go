package version

var (
	Version = "0.2.0-dev"

	// git hash should be filled by:
	// 	go build -ldflags="-X github.com/lu4/hashislife/version.GitHash=xxxx"

	GitHash   = "dev snapshot"
	BuildDate string
)
