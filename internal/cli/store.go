package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/julianstephens/harmony/internal/cloud"
	"github.com/julianstephens/harmony/internal/cloud/postgres"
	"github.com/julianstephens/harmony/internal/cloud/sqlite"
)

// OpenStore picks a document store by location: a PostgreSQL connection
// string selects postgres, anything else is a sqlite file path.
func OpenStore(location string) (cloud.DocumentStore, error) {
	location = strings.TrimSpace(location)
	if location == "" {
		return nil, fmt.Errorf("store location is empty")
	}
	if postgres.IsConnString(location) {
		if err := postgres.ValidateConnString(location); err != nil {
			if errors.Is(err, postgres.ErrEmbeddedCredentials) {
				return nil, fmt.Errorf("%w: use the OS keyring ('harmony config set-db'), PGPASSWORD or .pgpass instead", err)
			}
			return nil, err
		}
		return postgres.New(location), nil
	}
	return sqlite.New(ExpandHome(location)), nil
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
