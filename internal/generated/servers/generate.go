package servers

//go:generate oapi-codegen --config=../../../api/server.cfg.yml ../../../api/openapi.yml
