package export

import (
	"github.com/vanderheijden86/vidaboard/pkg/graph"
	"github.com/vanderheijden86/vidaboard/pkg/model"
)

func testDataset() model.Dataset {
	return model.Dataset{
		Skills: []model.Item{
			{ID: "mail", Name: "Email Triage", Description: "Sorts the inbox", Status: model.StatusActive, AutomationLevel: model.Float(80), Icon: "📧"},
			{ID: "cal", Name: "Calendar", Status: model.StatusPaused, AutomationLevel: model.Float(0)},
		},
		Integrations: []model.Item{
			{ID: "gh", Name: "GitHub", Status: model.StatusConnected},
		},
		CronJobs: []model.Item{
			{ID: "brief", Name: "Morning Brief", Schedule: "0 7 * * *", LastStatus: model.StatusOK},
		},
		Projects: []model.Item{
			{ID: "dash", Name: "Dashboard", Status: model.StatusInactive, Progress: model.Float(75)},
		},
		LastUpdated: "2024-03-05T14:07:09Z",
	}
}

func testGraph() model.Graph {
	return buildFrom(testDataset())
}

func buildFrom(ds model.Dataset) model.Graph {
	return graph.Build(ds)
}

func testMeta() Meta {
	return Meta{Title: "Test Board", LastUpdated: "2024-03-05T14:07:09Z", Source: "testdata.json"}
}
