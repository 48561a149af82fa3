// Package distancematrix consulta una API de matriz de distancias para
// obtener distancias viales entre pares de distritos y genera la tabla
// de cercanía que consume el resto del sistema. Cliente saliente
// solamente; se usa para regenerar el CSV de cercanía, no en el camino
// de una consulta.
package distancematrix

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strconv"
	"strings"
	"time"

	"dog-breed-recommender/internal/domain/records"
	"dog-breed-recommender/internal/platform/httpclient"
)

const (
	DefaultTimeout = 15 * time.Second

	distancePath = "/maps/api/distancematrix/json"
)

var (
	ErrInvalidInput = errors.New("invalid input")

	// ErrNoRoute se devuelve cuando la API no encuentra ruta entre
	// los dos distritos.
	ErrNoRoute = errors.New("no route between districts")
)

type Client struct {
	http   *httpclient.Client
	apiKey string
}

func New(baseURL, apiKey string, timeout time.Duration) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("%w: api key required", ErrInvalidInput)
	}
	hc, err := httpclient.NewWithBaseURL(baseURL, timeout)
	if err != nil {
		return nil, err
	}
	return &Client{http: hc, apiKey: apiKey}, nil
}

// NewWithHTTP permite inyectar el cliente HTTP (para tests).
func NewWithHTTP(hc *httpclient.Client, apiKey string) *Client {
	return &Client{http: hc, apiKey: apiKey}
}

// respuesta mínima que nos interesa del formato distance-matrix
type matrixResponse struct {
	Rows []struct {
		Elements []struct {
			Status   string `json:"status"`
			Distance struct {
				Value int `json:"value"` // metros
			} `json:"distance"`
		} `json:"elements"`
	} `json:"rows"`
	Status string `json:"status"`
}

// Distance devuelve la distancia vial en kilómetros entre dos distritos
// identificados por nombre.
func (c *Client) Distance(ctx context.Context, origin, destination string) (float64, error) {
	origin = strings.TrimSpace(origin)
	destination = strings.TrimSpace(destination)
	if origin == "" || destination == "" {
		return 0, ErrInvalidInput
	}

	q := url.Values{}
	q.Set("origins", origin)
	q.Set("destinations", destination)
	q.Set("units", "metric")
	q.Set("key", c.apiKey)

	var resp matrixResponse
	if err := c.http.GetJSON(ctx, distancePath, q, &resp); err != nil {
		return 0, fmt.Errorf("distancematrix: %w", err)
	}

	if resp.Status != "OK" || len(resp.Rows) == 0 || len(resp.Rows[0].Elements) == 0 {
		return 0, fmt.Errorf("distancematrix: unexpected response status %q", resp.Status)
	}
	el := resp.Rows[0].Elements[0]
	if el.Status != "OK" {
		return 0, fmt.Errorf("%w: %s -> %s", ErrNoRoute, origin, destination)
	}

	return float64(el.Distance.Value) / 1000.0, nil
}

// FetchTable consulta todas las combinaciones de distritos y devuelve la
// matriz de distancias en km, con el ID menor primero en cada par.
func (c *Client) FetchTable(ctx context.Context, districts []records.District) (map[[2]int]float64, error) {
	if len(districts) < 2 {
		return nil, fmt.Errorf("%w: need at least two districts", ErrInvalidInput)
	}

	out := make(map[[2]int]float64)
	for i := 0; i < len(districts); i++ {
		for j := i + 1; j < len(districts); j++ {
			a, b := districts[i], districts[j]
			dist, err := c.Distance(ctx, a.Name, b.Name)
			if err != nil {
				return nil, err
			}
			lo, hi := a.ID, b.ID
			if lo > hi {
				lo, hi = hi, lo
			}
			out[[2]int{lo, hi}] = dist
		}
	}
	return out, nil
}

// WriteCSV emite la matriz de distancias en el formato a,b,km que lee
// el loader de csvfile.
func WriteCSV(w io.Writer, table map[[2]int]float64) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"district_a", "district_b", "distance_km"}); err != nil {
		return err
	}
	for pair, km := range table {
		row := []string{
			strconv.Itoa(pair[0]),
			strconv.Itoa(pair[1]),
			strconv.FormatFloat(km, 'f', 3, 64),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
