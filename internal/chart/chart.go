// Package chart renders labeled regions as a self-contained, browser-viewable
// choropleth (Vega-Lite, loaded from a CDN).
package chart

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"os"

	"map-digitizer/internal/labeling"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// Options controls chart appearance.
type Options struct {
	Title  string
	Width  int
	Height int
}

var page = template.Must(template.New("chart").Parse(`<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <title>{{.Title}}</title>
  <script src="https://cdn.jsdelivr.net/npm/vega@5"></script>
  <script src="https://cdn.jsdelivr.net/npm/vega-lite@5"></script>
  <script src="https://cdn.jsdelivr.net/npm/vega-embed@6"></script>
</head>
<body>
  <div id="vis"></div>
  <script type="text/javascript">
    vegaEmbed("#vis", {{.Spec}}).catch(console.error);
  </script>
</body>
</html>
`))

type spec map[string]interface{}

// Spec builds the Vega-Lite specification: regions coloured by name, place
// markers and place labels.
func Spec(res *labeling.Result, opts Options) (map[string]interface{}, error) {
	regions := res.FeatureCollection()
	raw, err := regions.MarshalJSON()
	if err != nil {
		return nil, err
	}
	var regionData interface{}
	if err := json.Unmarshal(raw, &regionData); err != nil {
		return nil, err
	}

	places := make([]map[string]interface{}, len(res.Places))
	for i, p := range res.Places {
		places[i] = map[string]interface{}{"name": p.Name, "lat": p.Lat, "lon": p.Lon}
	}

	polygons := spec{
		"data": spec{
			"values": regionData,
			"format": spec{"type": "json", "property": "features"},
		},
		"mark": spec{"type": "geoshape", "stroke": "white", "strokeWidth": 0.5},
		"encoding": spec{
			"color": spec{
				"field":  "properties.name",
				"type":   "nominal",
				"title":  "District",
				"legend": spec{"columns": 1},
			},
			"tooltip": []spec{{"field": "properties.name", "type": "nominal", "title": "District"}},
		},
	}
	markers := spec{
		"data": spec{"values": places},
		"mark": spec{"type": "circle", "size": 50, "color": "black"},
		"encoding": spec{
			"longitude": spec{"field": "lon", "type": "quantitative"},
			"latitude":  spec{"field": "lat", "type": "quantitative"},
			"tooltip":   []spec{{"field": "name", "type": "nominal", "title": "Town"}},
		},
	}
	labels := spec{
		"data": spec{"values": places},
		"mark": spec{"type": "text", "dy": -10, "color": "black"},
		"encoding": spec{
			"longitude": spec{"field": "lon", "type": "quantitative"},
			"latitude":  spec{"field": "lat", "type": "quantitative"},
			"text":      spec{"field": "name", "type": "nominal"},
		},
	}

	out := spec{
		"$schema":    "https://vega.github.io/schema/vega-lite/v5.json",
		"title":      opts.Title,
		"width":      opts.Width,
		"height":     opts.Height,
		"projection": spec{"type": "mercator"},
		"layer":      []spec{polygons, markers, labels},
	}
	if b := bounds(regions); !b.IsEmpty() {
		out["description"] = fmt.Sprintf("%d regions, lon %.4f..%.4f, lat %.4f..%.4f",
			len(res.Regions), b.Min[0], b.Max[0], b.Min[1], b.Max[1])
	}
	return out, nil
}

// Render writes the HTML page.
func Render(w io.Writer, res *labeling.Result, opts Options) error {
	s, err := Spec(res, opts)
	if err != nil {
		return err
	}
	js, err := json.Marshal(s)
	if err != nil {
		return err
	}
	return page.Execute(w, struct {
		Title string
		Spec  template.JS
	}{opts.Title, template.JS(js)})
}

// WriteFile renders the page to path.
func WriteFile(path string, res *labeling.Result, opts Options) error {
	var buf bytes.Buffer
	if err := Render(&buf, res, opts); err != nil {
		return fmt.Errorf("render chart: %w", err)
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}

func bounds(fc *geojson.FeatureCollection) orb.Bound {
	var b orb.Bound
	first := true
	for _, f := range fc.Features {
		if f.Geometry == nil {
			continue
		}
		if first {
			b = f.Geometry.Bound()
			first = false
			continue
		}
		b = b.Union(f.Geometry.Bound())
	}
	if first {
		return orb.Bound{Min: orb.Point{1, 1}, Max: orb.Point{0, 0}}
	}
	return b
}
