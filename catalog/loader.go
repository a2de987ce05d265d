package catalog

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/gruntwork-io/go-commons/errors"
	"github.com/robmorgan/pifish/logger"
	"github.com/robmorgan/pifish/show"
	"github.com/sirupsen/logrus"
)

// ListConfigFiles returns the paths of the files in dir ending in ext, sorted by file name.
func ListConfigFiles(dir, ext string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.WithStackTrace(err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ext) {
			continue
		}
		paths = append(paths, filepath.Join(dir, entry.Name()))
	}
	return paths, nil
}

// Load parses every show document in dir. A document that fails to load is skipped with a warning, unless strict is
// set, in which case the first failure is returned.
func Load(dir, ext string, rig *show.Rig, strict bool) ([]*show.Show, error) {
	logger := logger.GetProjectLogger()

	paths, err := ListConfigFiles(dir, ext)
	if err != nil {
		return nil, err
	}

	shows := make([]*show.Show, 0, len(paths))
	for _, path := range paths {
		s, err := show.Load(path, rig)
		if err != nil {
			if strict {
				return nil, err
			}
			logger.WithError(err).Warnf("Skipping show [%s]", path)
			continue
		}

		logger.WithFields(logrus.Fields{
			"cues":     len(s.Cues),
			"length":   s.Length,
			"priority": s.Priority,
		}).Debugf("Loaded show [%s]", s.Name())
		shows = append(shows, s)
	}
	return shows, nil
}
