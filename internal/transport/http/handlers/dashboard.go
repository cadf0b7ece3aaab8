package http_handlers

import (
	"net/http"

	"github.com/mradvance/aihub/internal/transport/http/response"
)

// DashboardHandler serves the portal shell's data: stat cards, service tiles
// and the recent-activity feed. The numbers are the static operational
// snapshot the shell renders; live metrics are out of scope for the portal.
type DashboardHandler struct{}

func NewDashboardHandler() *DashboardHandler {
	return &DashboardHandler{}
}

type StatCard struct {
	Label  string `json:"label"`
	Value  string `json:"value"`
	Change string `json:"change"`
}

type ServiceTile struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Features    []string `json:"features"`
	Href        string   `json:"href"`
}

type Activity struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Time        string `json:"time"`
	Type        string `json:"type"`
}

type DashboardData struct {
	Stats            []StatCard    `json:"stats"`
	Services         []ServiceTile `json:"services"`
	RecentActivities []Activity    `json:"recentActivities"`
}

type Agent struct {
	Name         string `json:"name"`
	Status       string `json:"status"`
	Type         string `json:"type"`
	Interactions string `json:"interactions"`
	Uptime       string `json:"uptime"`
}

func (h *DashboardHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	response.OK(w, DashboardData{
		Stats: []StatCard{
			{Label: "Active AI Agents", Value: "12", Change: "+2.5%"},
			{Label: "Risk Assessments", Value: "1,247", Change: "+12.3%"},
			{Label: "Call Interactions", Value: "8,592", Change: "+8.7%"},
			{Label: "System Uptime", Value: "99.9%", Change: "+0.1%"},
		},
		Services: []ServiceTile{
			{
				Title:       "Call Agent",
				Description: "Access AI-powered call assistance and customer service tools",
				Features:    []string{"Voice Assistant", "Call Analytics", "Customer Insights"},
				Href:        "/call-agent",
			},
			{
				Title:       "Risk Management",
				Description: "Run risk assessments and access financial analysis tools",
				Features:    []string{"Risk Assessment", "Fraud Analysis", "Compliance Reports"},
				Href:        "/risk-management",
			},
			{
				Title:       "Agent Garden",
				Description: "Access available AI agents for your daily tasks",
				Features:    []string{"Available Agents", "Task Automation", "Workflow Integration"},
				Href:        "/agent-garden",
			},
		},
		RecentActivities: []Activity{
			{ID: 1, Title: "Risk Assessment Completed", Description: "High-priority loan application processed", Time: "2 minutes ago", Type: "risk"},
			{ID: 2, Title: "Call Agent Performance Update", Description: "Customer satisfaction increased to 94.2%", Time: "15 minutes ago", Type: "call"},
			{ID: 3, Title: "New Agent Deployed", Description: "Financial advisor bot is now live", Time: "1 hour ago", Type: "agent"},
			{ID: 4, Title: "System Health Check", Description: "All services operating normally", Time: "2 hours ago", Type: "system"},
		},
	})
}

func (h *DashboardHandler) Agents(w http.ResponseWriter, r *http.Request) {
	response.OK(w, map[string][]Agent{
		"agents": {
			{Name: "Customer Service Bot", Status: "active", Type: "Customer Support", Interactions: "2,453", Uptime: "99.8%"},
			{Name: "Financial Advisor", Status: "active", Type: "Financial Advisory", Interactions: "1,234", Uptime: "99.5%"},
			{Name: "Risk Assessment Agent", Status: "inactive", Type: "Risk Analysis", Interactions: "856", Uptime: "98.9%"},
		},
	})
}
