package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/sirupsen/logrus"
)

const requestTimeout = 3 * time.Second

// Indexer keeps read-side projections in Elasticsearch.
// A nil client turns every call into a no-op.
type Indexer struct {
	ES     *elasticsearch.Client
	Logger *logrus.Logger
}

func NewIndexer(es *elasticsearch.Client, logger *logrus.Logger) *Indexer {
	return &Indexer{ES: es, Logger: logger}
}

// Put upserts doc under index/id.
func (ix *Indexer) Put(ctx context.Context, index string, id int64, doc any) error {
	if ix == nil || ix.ES == nil || index == "" {
		return nil
	}
	b, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	req := esapi.IndexRequest{
		Index:      index,
		DocumentID: strconv.FormatInt(id, 10),
		Body:       bytes.NewReader(b),
		Refresh:    "false",
	}
	return ix.do(ctx, req, index, id)
}

// Remove deletes index/id. A missing document is not an error.
func (ix *Indexer) Remove(ctx context.Context, index string, id int64) error {
	if ix == nil || ix.ES == nil || index == "" {
		return nil
	}
	req := esapi.DeleteRequest{Index: index, DocumentID: strconv.FormatInt(id, 10)}
	return ix.do(ctx, req, index, id)
}

func (ix *Indexer) do(ctx context.Context, req esapi.Request, index string, id int64) error {
	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()
	res, err := req.Do(c, ix.ES)
	if err != nil {
		ix.warn(err, index, id, "es request failed")
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && res.StatusCode != http.StatusNotFound {
		err := fmt.Errorf("es %s", res.Status())
		ix.warn(err, index, id, "es response error")
		return err
	}
	return nil
}

func (ix *Indexer) warn(err error, index string, id int64, msg string) {
	if ix.Logger == nil {
		return
	}
	ix.Logger.WithError(err).WithFields(logrus.Fields{"index": index, "doc_id": id}).Warn(msg)
}
