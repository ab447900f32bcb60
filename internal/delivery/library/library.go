package library

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"goban/internal/adapters"
	"goban/internal/bootstrap"
	"goban/internal/delivery/auth"
	"goban/internal/domain/record"
	errs "goban/internal/errors"
	"goban/internal/httpresponse"
	repo "goban/internal/repository"
	libuc "goban/internal/usecase/library"
	"goban/internal/utils"
)

type LibraryHandler struct {
	cfg         bootstrap.Config
	log         *zap.SugaredLogger
	libraryUC   *libuc.LibraryUseCase
	authHandler *auth.AuthHandler
}

type ImportRequest struct {
	Folder string `json:"folder"`
	Name   string `json:"name"`
	SGF    string `json:"sgf"`
}

type SavedResponse struct {
	ID string `json:"id"`
}

func NewLibraryHandler(cfg bootstrap.Config, log *zap.SugaredLogger, mongoAdapter *adapters.AdapterMongo, authHandler *auth.AuthHandler) *LibraryHandler {
	return &LibraryHandler{
		cfg:         cfg,
		log:         log,
		libraryUC:   libuc.NewLibraryUseCase(repo.NewLibraryRepository(cfg, log, mongoAdapter.Database)),
		authHandler: authHandler,
	}
}

func (l *LibraryHandler) HandleSaveRecord(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		l.log.Error("HandleSaveRecord: only POST method is allowed")
		httpresponse.WriteResponseWithStatus(w, http.StatusMethodNotAllowed, "Only POST method is allowed")
		return
	}

	userID := l.authHandler.GetUserID(w, r)
	if userID == "" {
		return
	}

	var rec record.Record
	if err := utils.DecodeJSONRequest(r, &rec); err != nil {
		l.log.Error("HandleSaveRecord: JSON decode error: ", err)
		httpresponse.WriteResponseWithStatus(w, http.StatusBadRequest, err.Error())
		return
	}
	rec.Owner = userID

	id, err := l.libraryUC.SaveRecord(r.Context(), rec)
	if err != nil {
		l.log.Error("HandleSaveRecord: ", err)
		httpresponse.WriteResponseWithStatus(w, http.StatusBadRequest, err.Error())
		return
	}

	httpresponse.WriteResponseWithStatus(w, http.StatusOK, SavedResponse{ID: id})
}

func (l *LibraryHandler) HandleImportSGF(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		l.log.Error("HandleImportSGF: only POST method is allowed")
		httpresponse.WriteResponseWithStatus(w, http.StatusMethodNotAllowed, "Only POST method is allowed")
		return
	}

	userID := l.authHandler.GetUserID(w, r)
	if userID == "" {
		return
	}

	var req ImportRequest
	if err := utils.DecodeJSONRequest(r, &req); err != nil {
		l.log.Error("HandleImportSGF: JSON decode error: ", err)
		httpresponse.WriteResponseWithStatus(w, http.StatusBadRequest, err.Error())
		return
	}

	id, err := l.libraryUC.ImportSGF(r.Context(), userID, req.Folder, req.Name, req.SGF)
	if err != nil {
		l.log.Error("HandleImportSGF: ", err)
		httpresponse.WriteResponseWithStatus(w, http.StatusBadRequest, err.Error())
		return
	}

	httpresponse.WriteResponseWithStatus(w, http.StatusOK, SavedResponse{ID: id})
}

func (l *LibraryHandler) HandleListRecords(w http.ResponseWriter, r *http.Request) {
	userID := l.authHandler.GetUserID(w, r)
	if userID == "" {
		return
	}

	folder := r.URL.Query().Get("folder")
	pageNum, _ := strconv.Atoi(r.URL.Query().Get("page"))

	page, err := l.libraryUC.ListRecords(r.Context(), userID, folder, pageNum)
	if err != nil {
		l.log.Error("HandleListRecords: ", err)
		httpresponse.WriteResponseWithStatus(w, http.StatusInternalServerError, err.Error())
		return
	}

	httpresponse.WriteResponseWithStatus(w, http.StatusOK, page)
}

func (l *LibraryHandler) HandleListFolders(w http.ResponseWriter, r *http.Request) {
	userID := l.authHandler.GetUserID(w, r)
	if userID == "" {
		return
	}

	folders, err := l.libraryUC.ListFolders(r.Context(), userID)
	if err != nil {
		l.log.Error("HandleListFolders: ", err)
		httpresponse.WriteResponseWithStatus(w, http.StatusInternalServerError, err.Error())
		return
	}

	httpresponse.WriteResponseWithStatus(w, http.StatusOK, folders)
}

func (l *LibraryHandler) HandleGetRecord(w http.ResponseWriter, r *http.Request) {
	userID := l.authHandler.GetUserID(w, r)
	if userID == "" {
		return
	}

	id := r.URL.Query().Get("id")
	if id == "" {
		httpresponse.WriteResponseWithStatus(w, http.StatusBadRequest, "id is required")
		return
	}

	rec, err := l.libraryUC.GetRecordByID(r.Context(), userID, id)
	if err != nil {
		l.writeRecordError(w, id, err)
		return
	}

	httpresponse.WriteResponseWithStatus(w, http.StatusOK, rec)
}

func (l *LibraryHandler) HandleDeleteRecord(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost && r.Method != http.MethodDelete {
		l.log.Error("HandleDeleteRecord: only POST or DELETE is allowed")
		httpresponse.WriteResponseWithStatus(w, http.StatusMethodNotAllowed, "Only POST or DELETE is allowed")
		return
	}

	userID := l.authHandler.GetUserID(w, r)
	if userID == "" {
		return
	}

	id := r.URL.Query().Get("id")
	if id == "" {
		httpresponse.WriteResponseWithStatus(w, http.StatusBadRequest, "id is required")
		return
	}

	if err := l.libraryUC.DeleteRecord(r.Context(), userID, id); err != nil {
		l.writeRecordError(w, id, err)
		return
	}

	httpresponse.WriteResponseWithStatus(w, http.StatusOK, nil)
}

// HandleExportKifu streams the record as a printable PDF.
func (l *LibraryHandler) HandleExportKifu(w http.ResponseWriter, r *http.Request) {
	userID := l.authHandler.GetUserID(w, r)
	if userID == "" {
		return
	}

	id := r.URL.Query().Get("id")
	if id == "" {
		httpresponse.WriteResponseWithStatus(w, http.StatusBadRequest, "id is required")
		return
	}

	pdfBytes, err := l.libraryUC.ExportKifu(r.Context(), userID, id)
	if err != nil {
		l.writeRecordError(w, id, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "kifu-"+id+".pdf"))
	if _, err := w.Write(pdfBytes); err != nil {
		l.log.Error("HandleExportKifu: write error: ", err)
	}
}

func (l *LibraryHandler) writeRecordError(w http.ResponseWriter, id string, err error) {
	if errors.Is(err, errs.ErrRecordNotFound) {
		httpresponse.WriteResponseWithStatus(w, http.StatusNotFound,
			httpresponse.ErrorResponse{ErrorDescription: "record not found"})
		return
	}
	l.log.Errorf("library record %s: %v", id, err)
	httpresponse.WriteResponseWithStatus(w, http.StatusInternalServerError,
		httpresponse.ErrorResponse{ErrorDescription: err.Error()})
}
