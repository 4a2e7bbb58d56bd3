package response

type UploadResponse struct {
	Message          string   `json:"message"`
	Parsed           int      `json:"parsed"`
	Inserted         int      `json:"inserted"`
	Skipped          int      `json:"skipped"`
	CohortsCreated   int      `json:"cohortsCreated"`
	MembershipsAdded int      `json:"membershipsAdded"`
	InsertedEmails   []string `json:"insertedEmails"`
}
