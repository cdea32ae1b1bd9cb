package cli

import (
	"fmt"
	"os"

	"github.com/isdelr/pixelgram/internal/forms"
	"github.com/isdelr/pixelgram/internal/models"
	"github.com/spf13/cobra"
)

func likeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "like <post-id>",
		Short:   "Toggle your like on a post",
		Args:    cobra.ExactArgs(1),
		PreRunE: a.remote,
		RunE: func(cmd *cobra.Command, args []string) error {
			return report(cmd.OutOrStdout(), a.dispatcher.LikePost(cmd.Context(), args[0]))
		},
	}
}

func commentCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "comment",
		Short: "Add or remove comments",
	}

	add := &cobra.Command{
		Use:     "add <post-id> <text>",
		Short:   "Comment on a post",
		Args:    cobra.ExactArgs(2),
		PreRunE: a.remote,
		RunE: func(cmd *cobra.Command, args []string) error {
			return report(cmd.OutOrStdout(), a.dispatcher.AddComment(cmd.Context(), args[0], args[1]))
		},
	}
	del := &cobra.Command{
		Use:     "delete <post-id> <comment-id>",
		Short:   "Remove a comment from a post",
		Args:    cobra.ExactArgs(2),
		PreRunE: a.remote,
		RunE: func(cmd *cobra.Command, args []string) error {
			return report(cmd.OutOrStdout(), a.dispatcher.DeleteComment(cmd.Context(), args[0], args[1]))
		},
	}

	cmd.AddCommand(add, del)
	return cmd
}

func postCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "post",
		Short: "Create, edit and delete posts",
	}
	cmd.AddCommand(postCreateCmd(a), postUpdateCmd(a), postDeleteCmd(a))
	return cmd
}

func postCreateCmd(a *app) *cobra.Command {
	var (
		post      models.NewPost
		imagePath string
	)
	cmd := &cobra.Command{
		Use:     "create",
		Short:   "Upload a new post",
		Args:    cobra.NoArgs,
		PreRunE: a.remote,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(imagePath)
			if err != nil {
				return fmt.Errorf("read image: %w", err)
			}
			image, err := forms.AvatarDataURL(data)
			if err != nil {
				return err
			}
			if image == nil {
				return fmt.Errorf("image %s is empty", imagePath)
			}
			post.Image = *image
			return report(cmd.OutOrStdout(), a.dispatcher.CreatePost(cmd.Context(), post))
		},
	}
	cmd.Flags().StringVar(&imagePath, "image", "", "path to the image to upload")
	cmd.Flags().StringVar(&post.Caption, "caption", "", "post caption")
	cmd.Flags().StringVar(&post.Location, "location", "", "where the photo was taken")
	cmd.Flags().StringSliceVar(&post.Tags, "tags", nil, "comma separated tags")
	_ = cmd.MarkFlagRequired("image")
	return cmd
}

func postUpdateCmd(a *app) *cobra.Command {
	var update models.PostUpdate
	cmd := &cobra.Command{
		Use:     "update <post-id>",
		Short:   "Edit a post's caption, location and tags",
		Args:    cobra.ExactArgs(1),
		PreRunE: a.remote,
		RunE: func(cmd *cobra.Command, args []string) error {
			return report(cmd.OutOrStdout(), a.dispatcher.UpdatePost(cmd.Context(), args[0], update))
		},
	}
	cmd.Flags().StringVar(&update.Caption, "caption", "", "post caption")
	cmd.Flags().StringVar(&update.Location, "location", "", "where the photo was taken")
	cmd.Flags().StringSliceVar(&update.Tags, "tags", nil, "comma separated tags")
	return cmd
}

func postDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <post-id>",
		Short:   "Delete a post",
		Args:    cobra.ExactArgs(1),
		PreRunE: a.remote,
		RunE: func(cmd *cobra.Command, args []string) error {
			return report(cmd.OutOrStdout(), a.dispatcher.DeletePost(cmd.Context(), args[0]))
		},
	}
}
