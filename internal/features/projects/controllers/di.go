package projects_controllers

import (
	projects_services "projectdesk/internal/features/projects/services"
)

var projectController = &ProjectController{
	projectService: projects_services.GetProjectService(),
}

var assignmentController = &AssignmentController{
	assignmentService: projects_services.GetAssignmentService(),
}

var rulesController = &RulesController{
	rulesService: projects_services.GetRulesService(),
}

func GetProjectController() *ProjectController {
	return projectController
}

func GetAssignmentController() *AssignmentController {
	return assignmentController
}

func GetRulesController() *RulesController {
	return rulesController
}
