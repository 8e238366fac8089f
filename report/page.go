package report

import (
	"io"
	"os"

	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/goccy/go-json"
)

// RenderPage renders all charts onto a single html page
func RenderPage(w io.Writer, charts ...components.Charter) error {
	if len(charts) == 0 {
		return ErrNoData
	}
	page := components.NewPage()
	page.AddCharts(charts...)
	return page.Render(w)
}

// RenderFile renders all charts onto an html page at path
func RenderFile(path string, charts ...components.Charter) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return RenderPage(io.MultiWriter(file), charts...)
}

// WriteJSON writes v as indented json
func WriteJSON(w io.Writer, v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	out = append(out, '\n')
	_, err = w.Write(out)
	return err
}
