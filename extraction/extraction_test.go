package extraction

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"substitution-plan-notifier/configuration"
	"substitution-plan-notifier/exceptions"
)

const tabulaOutput = `[
  {"extraction_method": "lattice", "data": [
    [{"top": 1, "left": 1, "width": 10, "height": 5, "text": ""}, {"top": 1, "left": 11, "width": 10, "height": 5, "text": "10A"}],
    [{"top": 6, "left": 1, "width": 10, "height": 5, "text": "-"}, {"top": 6, "left": 11, "width": 10, "height": 5, "text": "Room 5"}]
  ]},
  {"extraction_method": "lattice", "data": [
    [{"top": 1, "left": 1, "width": 10, "height": 5, "text": ""}]
  ]}
]`

func TestParseTabulaJSON(t *testing.T) {
	pages, err := ParseTabulaJSON([]byte(tabulaOutput))
	require.NoError(t, err)

	assert.Equal(t, [][][]string{
		{{"", "10A"}, {"-", "Room 5"}},
		{{""}},
	}, pages)
}

func TestParseTabulaJSON_Malformed(t *testing.T) {
	_, err := ParseTabulaJSON([]byte(`{"data": []}`))
	assert.Error(t, err)

	_, err = ParseTabulaJSON([]byte(`[]`))
	assert.Error(t, err)
}

func TestParseCreationDate(t *testing.T) {
	text := "Vertretungsplan\nDatum: Montag, 14.10.2024\nKlasse 10A"

	date, err := ParseCreationDate(text)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 10, 14, 0, 0, 0, 0, time.Local), date)

	date, err = ParseCreationDate("Datum: Freitag, 3.1.2025 Stand 07:00, Seite 1")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 1, 3, 0, 0, 0, 0, time.Local), date)

	date, err = ParseCreationDate("Datum: Mo, 14.10.2024")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 10, 14, 0, 0, 0, 0, time.Local), date)
}

func TestParseCreationDate_WeekdayMismatch(t *testing.T) {
	_, err := ParseCreationDate("Datum: Dienstag, 14.10.2024")
	assert.True(t, errors.Is(err, exceptions.DateNotFound))
}

func TestParseCreationDate_Missing(t *testing.T) {
	_, err := ParseCreationDate("no date here")
	assert.True(t, errors.Is(err, exceptions.DateNotFound))

	_, err = ParseCreationDate("Datum: Montag, 14/10/2024")
	assert.True(t, errors.Is(err, exceptions.DateNotFound))
}

func TestFetcher_FetchWeekday(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, password, ok := r.BasicAuth()

		if !ok || user != "user" || password != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		if r.URL.Path != "/montag.pdf" {
			w.WriteHeader(http.StatusNotFound)
			return
		}

		_, _ = w.Write([]byte("%PDF-1.4"))
	}))
	defer server.Close()

	fetcher := NewFetcher(configuration.SourceSettings{
		Urls: map[string]string{
			"monday":  server.URL + "/montag.pdf",
			"tuesday": server.URL + "/dienstag.pdf",
		},
		Username: "user",
		Password: "secret",
		Timeout:  time.Second,
	})

	data, err := fetcher.FetchWeekday(context.Background(), time.Monday)
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-1.4"), data)
	assert.Equal(t, server.URL+"/montag.pdf", fetcher.SourceUrl(time.Monday))

	_, err = fetcher.FetchWeekday(context.Background(), time.Tuesday)
	assert.Error(t, err)

	_, err = fetcher.FetchWeekday(context.Background(), time.Wednesday)
	assert.Error(t, err)
}
