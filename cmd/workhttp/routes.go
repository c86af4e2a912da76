package main

import (
	"embed"
	"errors"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/indigo-web/workhttp/http"
	"github.com/indigo-web/workhttp/http/status"
	"github.com/indigo-web/workhttp/pool"
	"github.com/indigo-web/workhttp/router/inbuilt"
	"github.com/sirupsen/logrus"
)

//go:embed static
var static embed.FS

const (
	indexPage    = "index.html"
	notFoundPage = "not_found.html"

	sleepFor      = 5 * time.Second
	fibIterations = 1_000_000_000
)

// loadPage reads the page from dir, falling back to the built-in one if there's no
// such file
func loadPage(dir, name string, log logrus.FieldLogger) (string, error) {
	data, err := os.ReadFile(filepath.Join(dir, name))
	if err == nil {
		return string(data), nil
	}

	if !errors.Is(err, fs.ErrNotExist) {
		return "", err
	}

	log.WithField("page", name).Info("no such file, using the built-in page")
	data, err = static.ReadFile("static/" + name)

	return string(data), err
}

type pages struct {
	Index, NotFound string
}

func loadPages(dir string, log logrus.FieldLogger) (p pages, err error) {
	if p.Index, err = loadPage(dir, indexPage, log); err != nil {
		return p, err
	}

	p.NotFound, err = loadPage(dir, notFoundPage, log)

	return p, err
}

// newRouter registers the demo routes. stats is called on every GET /stats
func newRouter(p pages, iterations int, delay time.Duration, stats func() pool.Stats) *inbuilt.Router {
	index := func(*http.Request) http.Response {
		return http.OK(p.Index)
	}

	return inbuilt.New().
		Get("/", index).
		Get("/sleep", func(request *http.Request) http.Response {
			time.Sleep(delay)
			return index(request)
		}).
		Get("/fib", func(request *http.Request) http.Response {
			fibonacci(iterations)
			return index(request)
		}).
		Get("/stats", func(*http.Request) http.Response {
			response, err := http.JSON(status.OK, stats())
			if err != nil {
				panic(err)
			}

			return response
		})
}

// fibonacci burns the CPU for n steps. When the sequence overflows, it restarts from
// the beginning
func fibonacci(n int) (a, b int64) {
	a, b = 0, 1

	for ; n > 0; n-- {
		if b > math.MaxInt64-a {
			a, b = 0, 1
			continue
		}

		a, b = b, a+b
	}

	return a, b
}
