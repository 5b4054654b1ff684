package postgres

import (
	"database/sql"
	"encoding/json"
	"strconv"

	"github.com/pgvector/pgvector-go"
	"github.com/w-h-a/recall/storer"
)

func scanRecord(row *sql.Row) (*storer.Record, error) {
	var id int64
	var rec storer.Record
	var embedding sql.Null[pgvector.Vector]
	var metaBytes []byte

	err := row.Scan(
		&id,
		&rec.UserId,
		&rec.Category,
		&rec.Subcategory,
		&rec.Content,
		&rec.TokenCount,
		&rec.RelevanceScore,
		&rec.UsageFrequency,
		&rec.Current,
		&embedding,
		&metaBytes,
		&rec.CreatedAt,
		&rec.LastAccessedAt,
	)
	if err != nil {
		return nil, err
	}

	rec.Id = strconv.FormatInt(id, 10)

	if embedding.Valid {
		rec.Embedding = embedding.V.Slice()
	}

	if err := json.Unmarshal(metaBytes, &rec.Metadata); err != nil {
		rec.Metadata = make(map[string]any)
	}

	return &rec, nil
}

func scanRecords(rows *sql.Rows, hasScore bool) ([]storer.Record, error) {
	var records []storer.Record

	for rows.Next() {
		var id int64
		var rec storer.Record
		var embedding sql.Null[pgvector.Vector]
		var metaBytes []byte

		dest := []any{
			&id,
			&rec.UserId,
			&rec.Category,
			&rec.Subcategory,
			&rec.Content,
			&rec.TokenCount,
			&rec.RelevanceScore,
			&rec.UsageFrequency,
			&rec.Current,
			&embedding,
			&metaBytes,
			&rec.CreatedAt,
			&rec.LastAccessedAt,
		}
		if hasScore {
			dest = append(dest, &rec.Score)
		}

		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}

		rec.Id = strconv.FormatInt(id, 10)

		if embedding.Valid {
			rec.Embedding = embedding.V.Slice()
		}

		if err := json.Unmarshal(metaBytes, &rec.Metadata); err != nil {
			rec.Metadata = make(map[string]any)
		}

		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}
