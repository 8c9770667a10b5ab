//go:build ignore

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"
)

var baseURL = "http://localhost:8080"

func main() {
	if u := os.Getenv("API_URL"); u != "" {
		baseURL = u
	}

	scenarios := []struct {
		name   string
		method string
		path   string
	}{
		{"health", http.MethodGet, "/api/health"},
		{"list", http.MethodGet, "/api/parcels"},
		{"lookup-lowercase", http.MethodGet, "/api/parcels/pkg-1002"},
		{"lookup-missing", http.MethodGet, "/api/parcels/PKG-0000"},
		{"stats", http.MethodGet, "/api/stats"},
		{"predict", http.MethodPost, "/api/parcels/PKG-1001/prediction"},
		{"predict-missing", http.MethodPost, "/api/parcels/PKG-0000/prediction"},
	}

	fmt.Println("=== Parcel Tracker Smoke Test ===")
	fmt.Printf("Target: %s\n\n", baseURL)

	for _, s := range scenarios {
		fmt.Printf("--- %s ---\n", s.name)
		start := time.Now()
		body, status, err := call(s.method, s.path, "")
		if err != nil {
			fmt.Printf("Error: %v\n\n", err)
			continue
		}
		fmt.Printf("Status: %d | Duration: %s\n", status, time.Since(start))
		fmt.Printf("Body: %.200s\n\n", strings.TrimSpace(string(body)))
	}

	fmt.Println("--- superseded ---")
	supersede()
}

// supersede fires two predictions for one session; the older one should get 409.
func supersede() {
	var wg sync.WaitGroup
	statuses := make([]int, 2)
	for i, id := range []string{"PKG-1001", "PKG-1003"} {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, status, err := call(http.MethodPost, "/api/parcels/"+id+"/prediction", "smoke-session")
			if err != nil {
				fmt.Printf("Error: %v\n", err)
				return
			}
			statuses[i] = status
		}()
		time.Sleep(100 * time.Millisecond)
	}
	wg.Wait()
	fmt.Printf("Older request: %d | Newer request: %d\n", statuses[0], statuses[1])
}

func call(method, path, session string) ([]byte, int, error) {
	req, err := http.NewRequest(method, baseURL+path, nil)
	if err != nil {
		return nil, 0, err
	}
	if session != "" {
		req.Header.Set("X-Session-ID", session)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, err
	}
	var probe any
	if json.Unmarshal(body, &probe) != nil {
		return body, resp.StatusCode, fmt.Errorf("non-JSON response")
	}
	return body, resp.StatusCode, nil
}
