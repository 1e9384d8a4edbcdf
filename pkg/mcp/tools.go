package mcp

import "github.com/mark3labs/mcp-go/mcp"

const idDescription = "Entity unique ID (supla-<device guid>-<channel number>)"

// registerTools registers all MCP tools with the server
func (s *Server) registerTools() {
	s.mcpServer.AddTool(
		mcp.NewTool("get_health",
			mcp.WithDescription("Check whether the Supla integration is set up and how many servers are registered"),
		),
		s.handleGetHealth,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("list_servers",
			mcp.WithDescription("List the registered Supla servers with their update interval and entity count"),
		),
		s.handleListServers,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("list_devices",
			mcp.WithDescription("List all cover and switch entities with their last known state"),
			mcp.WithString("type",
				mcp.Description("Only list entities of this type"),
				mcp.Enum("cover", "switch"),
			),
		),
		s.handleListDevices,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("get_device",
			mcp.WithDescription("Get detailed information about a specific entity"),
			mcp.WithString("id",
				mcp.Required(),
				mcp.Description(idDescription),
			),
		),
		s.handleGetDevice,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("get_device_state",
			mcp.WithDescription("Get the state of an entity from its last refresh"),
			mcp.WithString("id",
				mcp.Required(),
				mcp.Description(idDescription),
			),
		),
		s.handleGetDeviceState,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("set_device_state",
			mcp.WithDescription("Set the state of an entity. Properties are validated against the entity's state schema."),
			mcp.WithString("id",
				mcp.Required(),
				mcp.Description(idDescription),
			),
			mcp.WithObject("state",
				mcp.Required(),
				mcp.Description("State properties to set (e.g. {\"state\": \"ON\"} or {\"position\": 50})"),
			),
		),
		s.handleSetDeviceState,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("refresh_device",
			mcp.WithDescription("Fetch the current channel state from the Supla server. Skipped while the entity's update interval has not elapsed."),
			mcp.WithString("id",
				mcp.Required(),
				mcp.Description(idDescription),
			),
		),
		s.handleRefreshDevice,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("execute_action",
			mcp.WithDescription("Send a raw Supla channel action (e.g. REVEAL_PARTIALLY) with optional parameters"),
			mcp.WithString("id",
				mcp.Required(),
				mcp.Description(idDescription),
			),
			mcp.WithString("action",
				mcp.Required(),
				mcp.Description("Supla action name"),
			),
			mcp.WithObject("parameters",
				mcp.Description("Action parameters (e.g. {\"percentage\": 40})"),
			),
		),
		s.handleExecuteAction,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("turn_on",
			mcp.WithDescription("Turn on a switch"),
			mcp.WithString("id",
				mcp.Required(),
				mcp.Description(idDescription),
			),
		),
		s.handleTurnOn,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("turn_off",
			mcp.WithDescription("Turn off a switch"),
			mcp.WithString("id",
				mcp.Required(),
				mcp.Description(idDescription),
			),
		),
		s.handleTurnOff,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("open_cover",
			mcp.WithDescription("Open a roller shutter, gate or garage door"),
			mcp.WithString("id",
				mcp.Required(),
				mcp.Description(idDescription),
			),
		),
		s.handleOpenCover,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("close_cover",
			mcp.WithDescription("Close a roller shutter, gate or garage door"),
			mcp.WithString("id",
				mcp.Required(),
				mcp.Description(idDescription),
			),
		),
		s.handleCloseCover,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("stop_cover",
			mcp.WithDescription("Stop a moving cover"),
			mcp.WithString("id",
				mcp.Required(),
				mcp.Description(idDescription),
			),
		),
		s.handleStopCover,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("set_cover_position",
			mcp.WithDescription("Move a roller shutter to a position, 0 closed and 100 open"),
			mcp.WithString("id",
				mcp.Required(),
				mcp.Description(idDescription),
			),
			mcp.WithNumber("position",
				mcp.Required(),
				mcp.Description("Target position 0-100"),
				mcp.Min(0),
				mcp.Max(100),
			),
		),
		s.handleSetCoverPosition,
	)
}
