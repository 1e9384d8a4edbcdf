package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/urmzd/homai-supla/pkg/entity"
)

func (s *Server) handleGetHealth(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	servers, _ := s.controller.ListServers(ctx)

	out := GetHealthOutput{
		Status:      "degraded",
		Integration: "not_set_up",
		Servers:     len(servers),
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
	}
	if s.controller.IsConnected() {
		out.Status = "healthy"
		out.Integration = "set_up"
	}

	return mcp.NewToolResultText(formatJSON(out)), nil
}

func (s *Server) handleListServers(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	servers, err := s.controller.ListServers(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to list servers: %s", err)), nil
	}

	infos := make([]ServerInfo, 0, len(servers))
	for _, srv := range servers {
		infos = append(infos, ServerInfo{
			Name:                  srv.Name,
			UpdateIntervalSeconds: srv.UpdateInterval.Seconds(),
			Entities:              srv.Entities,
		})
	}

	out := ListServersOutput{
		Servers: infos,
		Count:   len(infos),
	}
	return mcp.NewToolResultText(formatJSON(out)), nil
}

func (s *Server) handleListDevices(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	devices, err := s.controller.ListDevices(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to list devices: %s", err)), nil
	}

	filter, _ := request.GetArguments()["type"].(string)

	infos := make([]DeviceInfo, 0, len(devices))
	for i := range devices {
		if filter != "" && devices[i].Type != filter {
			continue
		}
		info := DeviceToInfo(&devices[i])
		if state, err := s.controller.GetDeviceState(ctx, devices[i].ID); err == nil {
			info.State = state
		}
		infos = append(infos, info)
	}

	out := ListDevicesOutput{
		Devices: infos,
		Count:   len(infos),
	}

	return mcp.NewToolResultText(formatJSON(out)), nil
}

func (s *Server) handleGetDevice(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := requiredString(request, "id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	d, err := s.controller.GetDevice(ctx, id)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("device not found: %s", err)), nil
	}

	info := DeviceToInfo(d)
	if state, err := s.controller.GetDeviceState(ctx, d.ID); err == nil {
		info.State = state
	}

	out := GetDeviceOutput{Device: info}
	return mcp.NewToolResultText(formatJSON(out)), nil
}

func (s *Server) handleGetDeviceState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := requiredString(request, "id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	state, err := s.controller.GetDeviceState(ctx, id)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to get device state: %s", err)), nil
	}

	return mcp.NewToolResultText(formatJSON(StateOutput{DeviceID: id, State: state})), nil
}

func (s *Server) handleSetDeviceState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := requiredString(request, "id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	args := request.GetArguments()

	// State can be passed as a nested "state" object or as flat args
	stateMap := map[string]any{}
	if stateRaw, ok := args["state"]; ok {
		if sm, ok := stateRaw.(map[string]any); ok {
			stateMap = sm
		} else {
			stateMap["state"] = stateRaw
		}
	} else {
		for k, v := range args {
			if k != "id" {
				stateMap[k] = v
			}
		}
	}

	return s.applyState(ctx, id, stateMap, "set device state")
}

func (s *Server) handleRefreshDevice(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := requiredString(request, "id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	state, err := s.controller.RefreshDevice(ctx, id)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to refresh device: %s", err)), nil
	}

	return mcp.NewToolResultText(formatJSON(StateOutput{DeviceID: id, State: state})), nil
}

func (s *Server) handleExecuteAction(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := requiredString(request, "id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	action, err := requiredString(request, "action")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	params, _ := request.GetArguments()["parameters"].(map[string]any)

	if err := s.controller.ExecuteAction(ctx, id, action, params); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to execute action: %s", err)), nil
	}

	out := ExecuteActionOutput{
		Success: true,
		Message: fmt.Sprintf("Action %s sent to %s", action, id),
	}
	return mcp.NewToolResultText(formatJSON(out)), nil
}

func (s *Server) handleTurnOn(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.handleFixedState(ctx, request, map[string]any{"state": "ON"}, "turn on device")
}

func (s *Server) handleTurnOff(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.handleFixedState(ctx, request, map[string]any{"state": "OFF"}, "turn off device")
}

func (s *Server) handleOpenCover(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.handleFixedState(ctx, request, map[string]any{"action": entity.CoverOpen}, "open cover")
}

func (s *Server) handleCloseCover(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.handleFixedState(ctx, request, map[string]any{"action": entity.CoverClose}, "close cover")
}

func (s *Server) handleStopCover(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.handleFixedState(ctx, request, map[string]any{"action": entity.CoverStop}, "stop cover")
}

func (s *Server) handleSetCoverPosition(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := requiredString(request, "id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	pos, ok := request.GetArguments()["position"].(float64)
	if !ok {
		return mcp.NewToolResultError(`required parameter "position" must be a number`), nil
	}

	return s.applyState(ctx, id, map[string]any{"position": pos}, "set cover position")
}

// --- helpers ---

func (s *Server) handleFixedState(ctx context.Context, request mcp.CallToolRequest, state map[string]any, what string) (*mcp.CallToolResult, error) {
	id, err := requiredString(request, "id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return s.applyState(ctx, id, state, what)
}

func (s *Server) applyState(ctx context.Context, id string, state map[string]any, what string) (*mcp.CallToolResult, error) {
	newState, err := s.controller.SetDeviceState(ctx, id, state)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to %s: %s", what, err)), nil
	}
	return mcp.NewToolResultText(formatJSON(StateOutput{DeviceID: id, State: newState})), nil
}

func requiredString(request mcp.CallToolRequest, key string) (string, error) {
	args := request.GetArguments()
	v, ok := args[key]
	if !ok || v == nil {
		return "", fmt.Errorf("required parameter %q is missing", key)
	}
	s, ok := v.(string)
	if !ok || s == "" {
		return "", fmt.Errorf("parameter %q must be a non-empty string", key)
	}
	return s, nil
}

func formatJSON(v any) string {
	b, err := encodeJSON(v)
	if err != nil {
		return fmt.Sprintf(`{"error":"failed to marshal response: %s"}`, err)
	}
	return string(b)
}

func encodeJSON(v any) ([]byte, error) {
	return json.MarshalIndent(v, "", "  ")
}
