package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/url"
	"strconv"

	"github.com/bluedragon-network/sipnav-go/internal/http"
	"github.com/bluedragon-network/sipnav-go/pkg/sipnav"
)

// RateDecksClient implements sipnav.RateDecksClient. Account and carrier
// decks share the same shapes on different path roots.
type RateDecksClient struct {
	httpClient *http.Client
}

// NewRateDecksClient creates a new rate decks client.
func NewRateDecksClient(httpClient *http.Client) *RateDecksClient {
	return &RateDecksClient{httpClient: httpClient}
}

const (
	accountDeckPath = "/api/account-rate-deck"
	carrierDeckPath = "/api/carrier-rate-deck"
)

// ListAccountDecks implements sipnav.RateDecksClient.ListAccountDecks.
func (c *RateDecksClient) ListAccountDecks(ctx context.Context, opts *sipnav.RateDeckListOptions) ([]sipnav.RateDeck, error) {
	return c.listDecks(ctx, accountDeckPath, opts)
}

// ListCarrierDecks implements sipnav.RateDecksClient.ListCarrierDecks.
func (c *RateDecksClient) ListCarrierDecks(ctx context.Context, opts *sipnav.RateDeckListOptions) ([]sipnav.RateDeck, error) {
	return c.listDecks(ctx, carrierDeckPath, opts)
}

func (c *RateDecksClient) listDecks(ctx context.Context, path string, opts *sipnav.RateDeckListOptions) ([]sipnav.RateDeck, error) {
	resp, err := c.httpClient.Get(ctx, path, opts.ToValues())
	if err != nil {
		return nil, fmt.Errorf("listing rate decks: %w", err)
	}

	var decks []sipnav.RateDeck
	if err := unwrapData(resp, &decks); err != nil {
		return nil, err
	}

	return decks, nil
}

// UploadAccountDeck implements sipnav.RateDecksClient.UploadAccountDeck.
func (c *RateDecksClient) UploadAccountDeck(ctx context.Context, upload *sipnav.RateDeckUpload) (*sipnav.RateDeck, error) {
	return c.uploadDeck(ctx, accountDeckPath, "account_id", upload.AccountID, upload)
}

// UploadCarrierDeck implements sipnav.RateDecksClient.UploadCarrierDeck.
func (c *RateDecksClient) UploadCarrierDeck(ctx context.Context, upload *sipnav.RateDeckUpload) (*sipnav.RateDeck, error) {
	return c.uploadDeck(ctx, carrierDeckPath, "carrier_id", upload.CarrierID, upload)
}

// uploadDeck sends the CSV as multipart/form-data with the owner ID and deck
// type as form fields.
func (c *RateDecksClient) uploadDeck(ctx context.Context, path, ownerField string, ownerID int, upload *sipnav.RateDeckUpload) (*sipnav.RateDeck, error) {
	var buf bytes.Buffer

	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("file", upload.Filename)
	if err != nil {
		return nil, fmt.Errorf("creating form file: %w", err)
	}

	if _, err := io.Copy(part, upload.Content); err != nil {
		return nil, fmt.Errorf("writing file to form: %w", err)
	}

	if err := writer.WriteField(ownerField, strconv.Itoa(ownerID)); err != nil {
		return nil, fmt.Errorf("writing form field: %w", err)
	}

	if err := writer.WriteField("local", strconv.Itoa(upload.Local)); err != nil {
		return nil, fmt.Errorf("writing form field: %w", err)
	}

	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("closing multipart writer: %w", err)
	}

	resp, err := c.httpClient.PostRaw(ctx, path, buf.Bytes(), writer.FormDataContentType())
	if err != nil {
		return nil, fmt.Errorf("uploading rate deck: %w", err)
	}

	var deck sipnav.RateDeck
	if err := unwrapData(resp, &deck); err != nil {
		return nil, err
	}

	return &deck, nil
}

type processDeckRequest struct {
	AccountID int               `json:"account_id,omitempty"`
	CarrierID int               `json:"carrier_id,omitempty"`
	DeckID    int               `json:"crd_id"`
	Filename  string            `json:"filename"`
	FieldsMap map[string]string `json:"fieldsmap"`
}

// ProcessAccountDeck implements sipnav.RateDecksClient.ProcessAccountDeck.
// fieldsMap assigns CSV columns to rate fields, e.g. {"0": "prefix"}.
func (c *RateDecksClient) ProcessAccountDeck(ctx context.Context, accountID, deckID int, filename string, fieldsMap map[string]string) (*sipnav.RateDeck, error) {
	return c.processDeck(ctx, accountDeckPath+"/process", &processDeckRequest{
		AccountID: accountID,
		DeckID:    deckID,
		Filename:  filename,
		FieldsMap: fieldsMap,
	})
}

// ProcessCarrierDeck implements sipnav.RateDecksClient.ProcessCarrierDeck.
func (c *RateDecksClient) ProcessCarrierDeck(ctx context.Context, carrierID, deckID int, filename string, fieldsMap map[string]string) (*sipnav.RateDeck, error) {
	return c.processDeck(ctx, carrierDeckPath+"/process", &processDeckRequest{
		CarrierID: carrierID,
		DeckID:    deckID,
		Filename:  filename,
		FieldsMap: fieldsMap,
	})
}

func (c *RateDecksClient) processDeck(ctx context.Context, path string, request *processDeckRequest) (*sipnav.RateDeck, error) {
	resp, err := c.httpClient.Post(ctx, path, request)
	if err != nil {
		return nil, fmt.Errorf("processing rate deck: %w", err)
	}

	var deck sipnav.RateDeck
	if err := unwrapData(resp, &deck); err != nil {
		return nil, err
	}

	return &deck, nil
}

// AccountDeckRows implements sipnav.RateDecksClient.AccountDeckRows.
func (c *RateDecksClient) AccountDeckRows(ctx context.Context, deckID, page int) (*sipnav.Page[sipnav.RateDeckRow], error) {
	return c.deckRows(ctx, fmt.Sprintf("%s/rows/%d", accountDeckPath, deckID), page)
}

// CarrierDeckRows implements sipnav.RateDecksClient.CarrierDeckRows.
func (c *RateDecksClient) CarrierDeckRows(ctx context.Context, deckID, page int) (*sipnav.Page[sipnav.RateDeckRow], error) {
	return c.deckRows(ctx, fmt.Sprintf("%s/rows/%d", carrierDeckPath, deckID), page)
}

func (c *RateDecksClient) deckRows(ctx context.Context, path string, page int) (*sipnav.Page[sipnav.RateDeckRow], error) {
	query := url.Values{}
	if page > 0 {
		query.Set("page", strconv.Itoa(page))
	}

	resp, err := c.httpClient.Get(ctx, path, query)
	if err != nil {
		return nil, fmt.Errorf("listing rate deck rows: %w", err)
	}

	var rows sipnav.Page[sipnav.RateDeckRow]
	if err := unwrapData(resp, &rows); err != nil {
		return nil, err
	}

	return &rows, nil
}

// DeleteAccountDeck implements sipnav.RateDecksClient.DeleteAccountDeck.
func (c *RateDecksClient) DeleteAccountDeck(ctx context.Context, deckID int) error {
	return c.deleteDeck(ctx, fmt.Sprintf("%s/%d", accountDeckPath, deckID))
}

// DeleteCarrierDeck implements sipnav.RateDecksClient.DeleteCarrierDeck.
func (c *RateDecksClient) DeleteCarrierDeck(ctx context.Context, deckID int) error {
	return c.deleteDeck(ctx, fmt.Sprintf("%s/%d", carrierDeckPath, deckID))
}

func (c *RateDecksClient) deleteDeck(ctx context.Context, path string) error {
	if _, err := c.httpClient.Delete(ctx, path); err != nil {
		return fmt.Errorf("deleting rate deck: %w", err)
	}

	return nil
}

// CheckDeckStatus implements sipnav.RateDecksClient.CheckDeckStatus. Status
// is keyed by the uploaded filename, not the deck ID; the platform exposes it
// on the carrier deck root for both deck kinds.
func (c *RateDecksClient) CheckDeckStatus(ctx context.Context, filename string) (*sipnav.RateDeckStatus, error) {
	query := url.Values{}
	query.Set("filename", filename)

	resp, err := c.httpClient.Get(ctx, carrierDeckPath+"/status", query)
	if err != nil {
		return nil, fmt.Errorf("checking rate deck status: %w", err)
	}

	var status sipnav.RateDeckStatus
	if err := unwrapData(resp, &status); err != nil {
		return nil, err
	}

	return &status, nil
}

// DownloadDeck implements sipnav.RateDecksClient.DownloadDeck. local narrows
// the deck type (0 international, 1 local) when non-nil. The returned link
// expires after one hour.
func (c *RateDecksClient) DownloadDeck(ctx context.Context, deckID int, local *int) (*sipnav.RateDeckLink, error) {
	query := url.Values{}
	if local != nil {
		query.Set("local", strconv.Itoa(*local))
	}

	resp, err := c.httpClient.Do(ctx, &http.Request{
		Method: "POST",
		Path:   fmt.Sprintf("%s/download/%d", carrierDeckPath, deckID),
		Query:  query,
	})
	if err != nil {
		return nil, fmt.Errorf("requesting rate deck download: %w", err)
	}

	var link sipnav.RateDeckLink
	if err := unwrapData(resp, &link); err != nil {
		return nil, err
	}

	return &link, nil
}

// DeckFailures implements sipnav.RateDecksClient.DeckFailures. It returns a
// link to a CSV of the rows that failed processing, valid for one hour.
func (c *RateDecksClient) DeckFailures(ctx context.Context, deckID int) (*sipnav.RateDeckLink, error) {
	query := url.Values{}
	query.Set("crd_id", strconv.Itoa(deckID))

	resp, err := c.httpClient.Get(ctx, carrierDeckPath+"/failures", query)
	if err != nil {
		return nil, fmt.Errorf("getting rate deck failures: %w", err)
	}

	var link sipnav.RateDeckLink
	if err := unwrapData(resp, &link); err != nil {
		return nil, err
	}

	return &link, nil
}
