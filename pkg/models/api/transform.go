package api

type Variants struct {
	Variants []string `json:"variants"`
}

type Error struct {
	Error string `json:"error"`
}
