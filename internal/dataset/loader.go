package dataset

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/jonas-p/go-shp"
	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"
	"go.uber.org/zap"
)

// Load reads a feature collection from a local path or http(s) URL.
// GeoJSON is the primary format; a .shp path is decoded as a shapefile
// with attributes taken from the companion DBF. Each dataset loads
// exactly once per process lifetime.
func Load(ctx context.Context, kind Kind, source string, timeout time.Duration) (*Collection, error) {
	log := zap.L().With(
		zap.String("component", "dataset.loader"),
		zap.String("dataset", string(kind)),
	)

	if strings.HasSuffix(strings.ToLower(source), ".shp") {
		return loadShapefile(kind, source, log)
	}

	data, err := readSource(ctx, source, timeout)
	if err != nil {
		return nil, eris.Wrapf(err, "dataset: read %s source", kind)
	}
	return decodeGeoJSON(kind, data, log)
}

// readSource fetches the raw bytes from a URL or local file.
func readSource(ctx context.Context, source string, timeout time.Duration) ([]byte, error) {
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
		if err != nil {
			return nil, eris.Wrap(err, "build request")
		}
		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			return nil, eris.Wrap(err, "download")
		}
		defer resp.Body.Close() //nolint:errcheck

		if resp.StatusCode != http.StatusOK {
			return nil, eris.Errorf("download returned status %d", resp.StatusCode)
		}
		return io.ReadAll(resp.Body)
	}

	data, err := os.ReadFile(source)
	if err != nil {
		return nil, eris.Wrap(err, "read file")
	}
	return data, nil
}

// decodeGeoJSON parses a GeoJSON FeatureCollection into a Collection.
// Features without properties still count; their attributes are all
// no-data.
func decodeGeoJSON(kind Kind, data []byte, log *zap.Logger) (*Collection, error) {
	var fc geojson.FeatureCollection
	if err := json.Unmarshal(data, &fc); err != nil {
		return nil, eris.Wrapf(err, "dataset: decode %s GeoJSON", kind)
	}

	col := &Collection{Kind: kind, Features: make([]Feature, 0, len(fc.Features))}
	for _, f := range fc.Features {
		if f == nil {
			continue
		}
		props := f.Properties
		if props == nil {
			props = map[string]any{}
		}
		col.Features = append(col.Features, Feature{Geometry: f.Geometry, Properties: props})
	}

	log.Info("dataset loaded", zap.Int("features", len(col.Features)))
	return col, nil
}

// loadShapefile decodes a shapefile, lower-casing DBF field names and
// parsing numeric attributes.
func loadShapefile(kind Kind, path string, log *zap.Logger) (*Collection, error) {
	reader, err := shp.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "dataset: open %s shapefile", kind)
	}
	defer func() { _ = reader.Close() }()

	fields := reader.Fields()
	col := &Collection{Kind: kind}
	for reader.Next() {
		_, shape := reader.Shape()
		props := make(map[string]any, len(fields))
		for i := range fields {
			name := strings.ToLower(strings.TrimRight(fields[i].String(), "\x00"))
			val := strings.TrimSpace(reader.Attribute(i))
			if val == "" {
				continue
			}
			if num, err := strconv.ParseFloat(val, 64); err == nil {
				props[name] = num
			} else {
				props[name] = val
			}
		}
		col.Features = append(col.Features, Feature{Geometry: shapeGeometry(shape), Properties: props})
	}

	log.Info("dataset loaded", zap.Int("features", len(col.Features)), zap.String("format", "shapefile"))
	return col, nil
}

// shapeGeometry converts a shapefile polygon to a geom.MultiPolygon.
// Geometry is opaque downstream, so unsupported shapes yield nil.
func shapeGeometry(s shp.Shape) geom.T {
	p, ok := s.(*shp.Polygon)
	if !ok || p.NumParts == 0 || len(p.Points) == 0 {
		return nil
	}

	mp := geom.NewMultiPolygon(geom.XY)
	for i := int32(0); i < p.NumParts; i++ {
		start := p.Parts[i]
		end := int32(len(p.Points))
		if i+1 < p.NumParts {
			end = p.Parts[i+1]
		}

		coords := make([]geom.Coord, 0, end-start)
		for j := start; j < end; j++ {
			coords = append(coords, geom.Coord{p.Points[j].X, p.Points[j].Y})
		}

		poly := geom.NewPolygon(geom.XY)
		if err := poly.Push(geom.NewLinearRing(geom.XY).MustSetCoords(coords)); err != nil {
			continue
		}
		if err := mp.Push(poly); err != nil {
			continue
		}
	}
	return mp
}
