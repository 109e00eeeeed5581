// Package apis implements the Tyko REST API. Handlers return an httpx.Response or an
// error; Router mounts them on a chi router.
package apis

import (
	"net/http"
	"path"
	"sort"

	"github.com/go-chi/chi/v5"
	"github.com/uiuclibrary/tyko/internal/common/httpx"
	"github.com/uiuclibrary/tyko/internal/tykosrv/config"
	"github.com/uiuclibrary/tyko/internal/tykosrv/db/models"
	"github.com/uiuclibrary/tyko/internal/tykosrv/tykocommon"
)

type handlerParam struct {
	Method  string
	Path    string
	Handler httpx.RequestHandler
}

const (
	projectPath = "/project/{projectID:[0-9]+}"
	objectPath  = projectPath + "/object/{objectID:[0-9]+}"
	itemPath    = objectPath + "/item/{itemID:[0-9]+}"
)

var resourceHandlers = []handlerParam{
	{http.MethodGet, "/format", listFormatTypes},
	{http.MethodGet, "/format/{formatID:[0-9]+}", getFormatType},
	{http.MethodGet, "/formats/cassette_tape/{cassetteTable}", listCassetteRows},
	{http.MethodPost, "/formats/cassette_tape/{cassetteTable}", createCassetteRow},
	{http.MethodPut, "/formats/cassette_tape/{cassetteTable}", updateCassetteRow},
	{http.MethodDelete, "/formats/cassette_tape/{cassetteTable}", deleteCassetteRow},

	{http.MethodGet, "/collection", listCollections},
	{http.MethodPost, "/collection", createCollection},
	{http.MethodGet, "/collection/{collectionID:[0-9]+}", getCollection},
	{http.MethodPut, "/collection/{collectionID:[0-9]+}", updateCollection},
	{http.MethodDelete, "/collection/{collectionID:[0-9]+}", deleteCollection},

	{http.MethodGet, "/project", listProjects},
	{http.MethodPost, "/project", createProject},
	{http.MethodGet, projectPath, getProject},
	{http.MethodPut, projectPath, updateProject},
	{http.MethodDelete, projectPath, deleteProject},
	{http.MethodPost, projectPath + "/notes", addProjectNote},
	{http.MethodGet, projectPath + "/notes/{noteID:[0-9]+}", getProjectNote},
	{http.MethodPut, projectPath + "/notes/{noteID:[0-9]+}", updateProjectNote},
	{http.MethodDelete, projectPath + "/notes/{noteID:[0-9]+}", removeProjectNote},
	{http.MethodPost, projectPath + "/object", addProjectObject},
	{http.MethodGet, objectPath, getProjectObject},
	{http.MethodDelete, objectPath, removeProjectObject},
	{http.MethodPost, objectPath + "/notes", addObjectNote},
	{http.MethodGet, objectPath + "/notes/{noteID:[0-9]+}", getObjectNote},
	{http.MethodPut, objectPath + "/notes/{noteID:[0-9]+}", updateObjectNote},
	{http.MethodDelete, objectPath + "/notes/{noteID:[0-9]+}", removeObjectNote},
	{http.MethodPost, objectPath + "/item", addObjectItem},
	{http.MethodDelete, itemPath, removeObjectItem},
	{http.MethodPost, itemPath + "/notes", addItemNote},
	{http.MethodGet, itemPath + "/notes/{noteID:[0-9]+}", getItemNote},
	{http.MethodPut, itemPath + "/notes/{noteID:[0-9]+}", updateItemNote},
	{http.MethodDelete, itemPath + "/notes/{noteID:[0-9]+}", removeItemNote},
	{http.MethodPost, itemPath + "/file", addFile},
	{http.MethodPost, itemPath + "/files", addFile},
	{http.MethodGet, itemPath + "/files/{fileID:[0-9]+}", getFile},
	{http.MethodPut, itemPath + "/files/{fileID:[0-9]+}", updateFile},
	{http.MethodDelete, itemPath + "/files/{fileID:[0-9]+}", removeFile},
	{http.MethodPost, itemPath + "/treatment", addTreatment},
	{http.MethodDelete, itemPath + "/treatment/{treatmentID:[0-9]+}", removeTreatment},

	{http.MethodGet, "/object", listObjects},
	{http.MethodPost, "/object", createObject},
	{http.MethodGet, "/object/{objectID:[0-9]+}", getObject},
	{http.MethodPut, "/object/{objectID:[0-9]+}", updateObject},
	{http.MethodDelete, "/object/{objectID:[0-9]+}", deleteObject},
	{http.MethodGet, "/object/{objectID:[0-9]+}-pbcore.xml", getObjectPBCore},

	{http.MethodGet, "/item", listItems},
	{http.MethodPost, "/item", createItem},
	{http.MethodGet, "/item/{itemID:[0-9]+}", getItem},
	{http.MethodPut, "/item/{itemID:[0-9]+}", updateItem},
	{http.MethodDelete, "/item/{itemID:[0-9]+}", deleteItem},

	{http.MethodGet, "/notes", listNotes},
	{http.MethodPost, "/notes", createNote},
	{http.MethodGet, "/note_types", listNoteTypes},
	{http.MethodGet, "/note/{noteID:[0-9]+}", getNote},
	{http.MethodPut, "/note/{noteID:[0-9]+}", updateNote},
	{http.MethodDelete, "/note/{noteID:[0-9]+}", deleteNote},

	{http.MethodGet, "/file/{fileID:[0-9]+}/note", listFileNotes},
	{http.MethodPost, "/file/{fileID:[0-9]+}/note", createFileNote},
	{http.MethodPut, "/file/{fileID:[0-9]+}/note", updateFileNote},
	{http.MethodDelete, "/file/{fileID:[0-9]+}/note", deleteFileNote},
	{http.MethodGet, "/file/annotation_types", listAnnotationTypes},
	{http.MethodPost, "/file/annotation_types", createAnnotationType},
	{http.MethodDelete, "/file/annotation_types", deactivateAnnotationType},
	{http.MethodGet, "/file/{fileID:[0-9]+}/annotations", listFileAnnotations},
	{http.MethodPost, "/file/{fileID:[0-9]+}/annotations", createFileAnnotation},
	{http.MethodPut, "/file/{fileID:[0-9]+}/annotations", updateFileAnnotation},
	{http.MethodDelete, "/file/{fileID:[0-9]+}/annotations", deleteFileAnnotation},

	{http.MethodGet, "/application_data", getApplicationData},
}

// handlers returns the resource routes followed by one route per enumeration table.
func handlers() []handlerParam {
	all := make([]handlerParam, 0, len(resourceHandlers)+len(models.EnumTables)+1)
	all = append(all, resourceHandlers...)
	for _, e := range models.EnumTables {
		all = append(all, handlerParam{
			Method:  http.MethodGet,
			Path:    "/formats/" + e.Family + "/" + e.Route,
			Handler: enumHandler(e.Table),
		})
	}
	return append(all, handlerParam{http.MethodGet, "/", listRoutes})
}

// Router registers the API routes on r. The caller mounts r under the API prefix.
func Router(r chi.Router) chi.Router {
	for _, handler := range handlers() {
		r.Method(handler.Method, handler.Path, httpx.WrapHttpRsp(handler.Handler))
	}
	return r
}

type routeInfo struct {
	Route   string   `json:"route"`
	Methods []string `json:"methods"`
}

func routeList(prefix string) []routeInfo {
	byPath := make(map[string][]string)
	for _, h := range handlers() {
		p := path.Join("/", prefix, h.Path)
		byPath[p] = append(byPath[p], h.Method)
	}
	out := make([]routeInfo, 0, len(byPath))
	for p, methods := range byPath {
		sort.Strings(methods)
		out = append(out, routeInfo{Route: p, Methods: methods})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Route < out[j].Route })
	return out
}

func listRoutes(r *http.Request) (*httpx.Response, error) {
	return ok(routeList(config.Config().APIPrefix)), nil
}

func getApplicationData(r *http.Request) (*httpx.Response, error) {
	return ok(map[string]string{
		"version":      tykocommon.GetVersion(),
		"server_color": config.Config().ServerColor,
	}), nil
}
