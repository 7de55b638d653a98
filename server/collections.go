package server

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
)

// The data API is deliberately generic: named collections of rows,
// scoped to the session user. Collections and their columns are
// whitelisted here; anything else is rejected.

type colKind int

const (
	colText colKind = iota
	colBool
	colJSON
	colTime
)

type column struct {
	name string
	kind colKind
}

type collection struct {
	table      string
	columns    []column
	hasUpdated bool // table carries an updated_at column
}

func (col collection) find(name string) (column, bool) {
	for _, c := range col.columns {
		if c.name == name {
			return c, true
		}
	}
	return column{}, false
}

var collections = map[string]collection{
	"tasks": {
		table: "tasks",
		columns: []column{
			{"title", colText},
			{"category", colText},
			{"completed", colBool},
			{"page", colText},
			{"weekdays", colJSON},
			{"all_day", colBool},
			{"scheduled_time", colText},
			{"identity_tags", colJSON},
			{"two_minute_version", colText},
			{"recurrence", colJSON},
			{"created_at", colTime},
			{"updated_at", colTime},
		},
		hasUpdated: true,
	},
	"identities": {
		table: "identities",
		columns: []column{
			{"name", colText},
			{"emoji", colText},
			{"created_at", colTime},
		},
	},
	"archetypes": {
		table: "archetypes",
		columns: []column{
			{"name", colText},
			{"emoji", colText},
			{"description", colText},
			{"identities", colJSON},
			{"habits", colJSON},
			{"created_at", colTime},
		},
	},
	"completion_logs": {
		table: "completion_logs",
		columns: []column{
			{"task_id", colText},
			{"identity_id", colText},
			{"two_minute", colBool},
			{"friction_reason", colText},
			{"occurred_at", colTime},
		},
	},
	"day_logs": {
		table: "day_logs",
		columns: []column{
			{"date", colText},
			{"page", colText},
			{"all_completed", colBool},
			{"created_at", colTime},
		},
	},
	"categories": {
		table: "categories",
		columns: []column{
			{"name", colText},
			{"emoji", colText},
			{"created_at", colTime},
		},
	},
}

func lookupCollection(c echo.Context) (collection, bool) {
	col, ok := collections[c.Param("collection")]
	return col, ok
}

// handleList returns all of the user's rows in a collection. Equality
// filters arrive as query params named after text or bool columns;
// order_by and limit are optional.
func (s *Server) handleList(c echo.Context) error {
	col, ok := lookupCollection(c)
	if !ok {
		return errorJSON(c, http.StatusNotFound, "unknown collection")
	}
	userID := c.Get("user_id").(string)

	query := "SELECT id"
	for _, cc := range col.columns {
		query += ", " + cc.name
	}
	query += fmt.Sprintf(" FROM %s WHERE user_id = $1", col.table)
	args := []interface{}{userID}

	for _, cc := range col.columns {
		v := c.QueryParam(cc.name)
		if v == "" {
			continue
		}
		switch cc.kind {
		case colText:
			args = append(args, v)
		case colBool:
			args = append(args, v == "true")
		default:
			continue
		}
		query += fmt.Sprintf(" AND %s = $%d", cc.name, len(args))
	}

	orderBy := "created_at"
	if _, ok := col.find("occurred_at"); ok {
		orderBy = "occurred_at"
	}
	if v := c.QueryParam("order_by"); v != "" {
		if _, ok := col.find(v); !ok {
			return errorJSON(c, http.StatusBadRequest, "unknown order_by column")
		}
		orderBy = v
	}
	query += " ORDER BY " + orderBy + " ASC"

	if v := c.QueryParam("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return errorJSON(c, http.StatusBadRequest, "invalid limit")
		}
		query += fmt.Sprintf(" LIMIT %d", n)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		c.Logger().Error("list query error:", err)
		return errorJSON(c, http.StatusInternalServerError, "internal error")
	}
	defer rows.Close()

	out := []map[string]interface{}{}
	for rows.Next() {
		row, err := scanRow(rows, col)
		if err != nil {
			c.Logger().Error("list scan error:", err)
			return errorJSON(c, http.StatusInternalServerError, "internal error")
		}
		out = append(out, row)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"rows": out})
}

// handleInsert creates one row from a JSON attribute map. The server
// fills id and any timestamp the client leaves out.
func (s *Server) handleInsert(c echo.Context) error {
	col, ok := lookupCollection(c)
	if !ok {
		return errorJSON(c, http.StatusNotFound, "unknown collection")
	}
	userID := c.Get("user_id").(string)

	var body map[string]interface{}
	if err := c.Bind(&body); err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid request")
	}
	for k := range body {
		if _, ok := col.find(k); !ok && k != "id" {
			return errorJSON(c, http.StatusBadRequest, "unknown column: "+k)
		}
	}

	names := []string{"user_id"}
	args := []interface{}{userID}
	for _, cc := range col.columns {
		raw, present := body[cc.name]
		if !present {
			continue
		}
		v, err := toSQLValue(raw, cc.kind)
		if err != nil {
			return errorJSON(c, http.StatusBadRequest, fmt.Sprintf("bad value for %s: %v", cc.name, err))
		}
		names = append(names, cc.name)
		args = append(args, v)
	}

	placeholders := make([]string, len(names))
	for i := range names {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}
	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) RETURNING id",
		col.table, strings.Join(names, ", "), strings.Join(placeholders, ", "))

	var id string
	if err := s.db.QueryRow(query, args...).Scan(&id); err != nil {
		c.Logger().Error("insert error:", err)
		return errorJSON(c, http.StatusInternalServerError, "internal error")
	}

	row, err := s.fetchRow(col, userID, id)
	if err != nil {
		c.Logger().Error("insert fetch error:", err)
		return errorJSON(c, http.StatusInternalServerError, "internal error")
	}
	return c.JSON(http.StatusOK, row)
}

// handlePatch updates the provided columns of one row.
func (s *Server) handlePatch(c echo.Context) error {
	col, ok := lookupCollection(c)
	if !ok {
		return errorJSON(c, http.StatusNotFound, "unknown collection")
	}
	userID := c.Get("user_id").(string)
	id := c.Param("id")

	var body map[string]interface{}
	if err := c.Bind(&body); err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid request")
	}
	if len(body) == 0 {
		return errorJSON(c, http.StatusBadRequest, "empty patch")
	}
	for k := range body {
		if _, ok := col.find(k); !ok && k != "id" {
			return errorJSON(c, http.StatusBadRequest, "unknown column: "+k)
		}
	}

	var sets []string
	args := []interface{}{}
	for _, cc := range col.columns {
		raw, present := body[cc.name]
		if !present {
			continue
		}
		v, err := toSQLValue(raw, cc.kind)
		if err != nil {
			return errorJSON(c, http.StatusBadRequest, fmt.Sprintf("bad value for %s: %v", cc.name, err))
		}
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s = $%d", cc.name, len(args)))
	}
	if len(sets) == 0 {
		return errorJSON(c, http.StatusBadRequest, "no known columns in patch")
	}
	if col.hasUpdated {
		sets = append(sets, "updated_at = NOW()")
	}

	args = append(args, id, userID)
	query := fmt.Sprintf("UPDATE %s SET %s WHERE id = $%d AND user_id = $%d",
		col.table, strings.Join(sets, ", "), len(args)-1, len(args))

	res, err := s.db.Exec(query, args...)
	if err != nil {
		c.Logger().Error("patch error:", err)
		return errorJSON(c, http.StatusInternalServerError, "internal error")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return errorJSON(c, http.StatusNotFound, "row not found")
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// handleDelete removes one row.
func (s *Server) handleDelete(c echo.Context) error {
	col, ok := lookupCollection(c)
	if !ok {
		return errorJSON(c, http.StatusNotFound, "unknown collection")
	}
	userID := c.Get("user_id").(string)

	res, err := s.db.Exec(
		fmt.Sprintf("DELETE FROM %s WHERE id = $1 AND user_id = $2", col.table),
		c.Param("id"), userID)
	if err != nil {
		c.Logger().Error("delete error:", err)
		return errorJSON(c, http.StatusInternalServerError, "internal error")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return errorJSON(c, http.StatusNotFound, "row not found")
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) fetchRow(col collection, userID, id string) (map[string]interface{}, error) {
	query := "SELECT id"
	for _, cc := range col.columns {
		query += ", " + cc.name
	}
	query += fmt.Sprintf(" FROM %s WHERE id = $1 AND user_id = $2", col.table)

	rows, err := s.db.Query(query, id, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	if !rows.Next() {
		return nil, sql.ErrNoRows
	}
	return scanRow(rows, col)
}

// scanRow reads one generic row into a JSON-ready attribute map.
func scanRow(rows *sql.Rows, col collection) (map[string]interface{}, error) {
	var id string
	holders := make([]interface{}, 0, len(col.columns)+1)
	holders = append(holders, &id)

	texts := make([]sql.NullString, len(col.columns))
	bools := make([]sql.NullBool, len(col.columns))
	blobs := make([][]byte, len(col.columns))
	times := make([]sql.NullTime, len(col.columns))
	for i, cc := range col.columns {
		switch cc.kind {
		case colText:
			holders = append(holders, &texts[i])
		case colBool:
			holders = append(holders, &bools[i])
		case colJSON:
			holders = append(holders, &blobs[i])
		case colTime:
			holders = append(holders, &times[i])
		}
	}
	if err := rows.Scan(holders...); err != nil {
		return nil, err
	}

	row := map[string]interface{}{"id": id}
	for i, cc := range col.columns {
		switch cc.kind {
		case colText:
			row[cc.name] = texts[i].String
		case colBool:
			row[cc.name] = bools[i].Bool
		case colJSON:
			var v interface{}
			if len(blobs[i]) > 0 {
				_ = json.Unmarshal(blobs[i], &v)
			}
			row[cc.name] = v
		case colTime:
			if times[i].Valid {
				row[cc.name] = times[i].Time.Format(time.RFC3339Nano)
			} else {
				row[cc.name] = ""
			}
		}
	}
	return row, nil
}

// toSQLValue converts a JSON attribute value to a driver value for
// its column kind.
func toSQLValue(raw interface{}, kind colKind) (interface{}, error) {
	switch kind {
	case colText:
		s, ok := raw.(string)
		if !ok {
			return nil, fmt.Errorf("want string")
		}
		return s, nil
	case colBool:
		b, ok := raw.(bool)
		if !ok {
			return nil, fmt.Errorf("want bool")
		}
		return b, nil
	case colJSON:
		data, err := json.Marshal(raw)
		if err != nil {
			return nil, err
		}
		return string(data), nil
	case colTime:
		s, ok := raw.(string)
		if !ok {
			return nil, fmt.Errorf("want RFC3339 string")
		}
		t, err := time.Parse(time.RFC3339Nano, s)
		if err != nil {
			return nil, err
		}
		return t, nil
	}
	return nil, fmt.Errorf("unknown column kind")
}
