package projects_testing

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"net/http/httptest"

	audit_logs "projectdesk/internal/features/audit_logs"
	projects_models "projectdesk/internal/features/projects/models"
	projects_repositories "projectdesk/internal/features/projects/repositories"
	users_dto "projectdesk/internal/features/users/dto"
	users_enums "projectdesk/internal/features/users/enums"
	users_middleware "projectdesk/internal/features/users/middleware"
	users_services "projectdesk/internal/features/users/services"

	"github.com/google/uuid"

	"github.com/gin-gonic/gin"
)

func CreateTestRouter(controllers ...ControllerInterface) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	v1 := router.Group("/api/v1")
	protected := v1.Group("").Use(users_middleware.AuthMiddleware(users_services.GetUserService()))

	for _, controller := range controllers {
		if routerGroup, ok := protected.(*gin.RouterGroup); ok {
			controller.RegisterRoutes(routerGroup)
		}
	}

	audit_logs.SetupDependencies()

	return router
}

// CreateTestProject writes a project straight through the repository with a
// unique key; project creation has no API surface, records arrive via the
// intake pipeline in production.
func CreateTestProject(name string) *projects_models.Project {
	project := &projects_models.Project{
		ID:       uuid.New(),
		TypeCode: "WET",
		Number:   fmt.Sprintf("%04d", rand.Intn(10000)),
		Name:     name,
	}

	projectRepository := &projects_repositories.ProjectRepository{}
	if err := projectRepository.CreateProject(project); err != nil {
		panic("Failed to create test project: " + err.Error())
	}

	return project
}

func CreateTestProjectWithType(name, typeCode string) *projects_models.Project {
	project := &projects_models.Project{
		ID:       uuid.New(),
		TypeCode: typeCode,
		Number:   fmt.Sprintf("%04d", rand.Intn(10000)),
		Name:     name,
	}

	projectRepository := &projects_repositories.ProjectRepository{}
	if err := projectRepository.CreateProject(project); err != nil {
		panic("Failed to create test project: " + err.Error())
	}

	return project
}

// AssignUserToProject appends one assignment without touching the others.
func AssignUserToProject(
	project *projects_models.Project,
	user *users_dto.SignInResponseDTO,
	role users_enums.ProjectRole,
) {
	assignmentRepository := &projects_repositories.AssignmentRepository{}

	rows, err := assignmentRepository.GetAssignedStaff(project.ID)
	if err != nil {
		panic("Failed to get assigned staff: " + err.Error())
	}

	assignments := make([]*projects_models.ProjectAssignment, 0, len(rows)+1)
	for _, row := range rows {
		assignments = append(assignments, &projects_models.ProjectAssignment{
			ProjectID: project.ID,
			UserID:    row.UserID,
			Role:      row.Role,
		})
	}

	assignments = append(assignments, &projects_models.ProjectAssignment{
		ProjectID: project.ID,
		UserID:    user.UserID,
		Role:      role,
	})

	if err := assignmentRepository.ReplaceAssignments(project.ID, assignments); err != nil {
		panic("Failed to assign user to project: " + err.Error())
	}
}

func MakeAPIRequest(router *gin.Engine, method, url, authToken string, body any) *httptest.ResponseRecorder {
	var requestBody *bytes.Buffer
	if body != nil {
		bodyJSON, err := json.Marshal(body)
		if err != nil {
			panic(err)
		}
		requestBody = bytes.NewBuffer(bodyJSON)
	} else {
		requestBody = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequest(method, url, requestBody)
	if err != nil {
		panic(err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authToken != "" {
		req.Header.Set("Authorization", authToken)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}
