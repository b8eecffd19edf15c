package models

type Camera struct {
	ID        int64
	Name      string
	StreamURL string
	IsActive  bool
}
