package domain

type ProjectStatus string

const (
	ProjectStatusActive    ProjectStatus = "ACTIVE"
	ProjectStatusCompleted ProjectStatus = "COMPLETED"
	ProjectStatusPaused    ProjectStatus = "PAUSED"
)

type Project struct {
	ID            int32         `json:"id"`
	NGOID         int32         `json:"ngo_id"`
	Title         string        `json:"title"`
	Description   string        `json:"description"`
	Category      string        `json:"category"`
	GoalAmount    int64         `json:"goal_amount"`
	RaisedAmount  int64         `json:"raised_amount"`
	Status        ProjectStatus `json:"status"`
	ImageURL      string        `json:"image_url"`
	CreatedOn     string        `json:"created_on"`
	UpdatedOn     string        `json:"updated_on"`
}

// ProjectUpdate is a proof-of-impact post by the NGO running the project.
type ProjectUpdate struct {
	ID        int32  `json:"id"`
	ProjectID int32  `json:"project_id"`
	Title     string `json:"title"`
	Body      string `json:"body"`
	ImageURL  string `json:"image_url"`
	PostedOn  string `json:"posted_on"`
}
