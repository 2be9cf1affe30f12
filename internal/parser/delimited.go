package parser

import (
	"gonum.org/v1/gonum/mat"

	"github.com/KaramelBytes/inflammation-cli/internal/inflammation"
)

type delimitedLoader struct{}

func (delimitedLoader) CanLoad(path string) bool {
	switch ext(path) {
	case ".csv", ".tsv", ".txt":
		return true
	}
	return false
}

func (delimitedLoader) Load(path string, opt Options) (*mat.Dense, error) {
	delim := opt.Delimiter
	if delim == 0 {
		delim = ','
		if ext(path) == ".tsv" {
			delim = '\t'
		}
	}
	return inflammation.LoadCSV(path, inflammation.WithDelimiter(delim))
}
