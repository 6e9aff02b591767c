package files

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// LoadEnv parses a dotenv file. UTF-16 files with a byte order mark are
// decoded; anything else is read as UTF-8.
func LoadEnv(path string) (map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open env file")
	}
	defer f.Close()

	decoder := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	env, err := godotenv.Parse(transform.NewReader(f, decoder))
	if err != nil {
		return nil, errors.Wrapf(err, "parse env file %v", path)
	}
	return env, nil
}

// ReadSource reads a source file with the same decoding as LoadEnv.
func ReadSource(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", errors.Wrap(err, "read source file")
	}
	text, _, err := transform.Bytes(unicode.BOMOverride(unicode.UTF8.NewDecoder()), data)
	if err != nil {
		return "", errors.Wrapf(err, "decode source file %v", path)
	}
	return string(text), nil
}
