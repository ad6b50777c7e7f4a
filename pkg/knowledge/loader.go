package knowledge

import (
	"encoding/json"
	"errors"
	"os"

	"github.com/sirupsen/logrus"

	"ConciergeGolang/internal/entity"
	"ConciergeGolang/pkg/s3"
)

// Loader resolves the FAQ corpus at startup. The corpus normally lives as
// a JSON object in the property's S3 bucket so staff can edit it without a
// deploy; a local file keeps development and degraded startup working.
type Loader struct {
	s3Client s3.ItfS3
	log      *logrus.Logger
}

func NewLoader(s3Client s3.ItfS3, log *logrus.Logger) *Loader {
	return &Loader{
		s3Client: s3Client,
		log:      log,
	}
}

// Load returns the FAQ corpus, preferring the S3 object and falling back
// to the local file. The result is read-only for the process lifetime.
func (l *Loader) Load() ([]entity.FAQEntry, error) {
	if l.s3Client != nil {
		if key := os.Getenv("FAQ_CORPUS_S3_KEY"); key != "" {
			data, err := l.s3Client.FetchObject(key)
			if err == nil {
				corpus, parseErr := parseCorpus(data)
				if parseErr == nil {
					l.log.WithFields(logrus.Fields{
						"key":     key,
						"entries": len(corpus),
					}).Info("Loaded FAQ corpus from S3")
					return corpus, nil
				}
				err = parseErr
			}
			l.log.WithFields(logrus.Fields{
				"key":   key,
				"error": err.Error(),
			}).Warn("Failed to load FAQ corpus from S3, trying local file")
		}
	}

	path := os.Getenv("FAQ_CORPUS_PATH")
	if path == "" {
		path = "./qna.json"
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	corpus, err := parseCorpus(data)
	if err != nil {
		return nil, err
	}

	l.log.WithFields(logrus.Fields{
		"path":    path,
		"entries": len(corpus),
	}).Info("Loaded FAQ corpus from file")
	return corpus, nil
}

func parseCorpus(data []byte) ([]entity.FAQEntry, error) {
	var corpus []entity.FAQEntry
	if err := json.Unmarshal(data, &corpus); err != nil {
		return nil, err
	}
	if len(corpus) == 0 {
		return nil, errors.New("FAQ corpus is empty")
	}
	return corpus, nil
}
