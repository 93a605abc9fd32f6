package sqlrepo

import (
	"context"

	"github.com/garnizeh/jobboard/pkg/models"
)

func (r *SQLRepo) ListNews(ctx context.Context) ([]models.NewsItem, error) {
	rows, err := r.conn.QueryRows(ctx, `SELECT id, title, source, url, summary, published FROM news ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.NewsItem{}
	for rows.Next() {
		var n models.NewsItem
		if err := rows.Scan(&n.ID, &n.Title, &n.Source, &n.URL, &n.Summary, &n.Published); err != nil {
			return nil, err
		}
		out = append(out, n)
	}

	return out, rows.Err()
}
